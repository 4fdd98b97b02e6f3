package ctx

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Context carries the process-wide handles: the active database connections,
// a base context, and the logger. One instance is built at startup and
// injected everywhere.
type Context struct {
	MySQLIns *gorm.DB
	MongoIns *mongo.Database
	Ctx      context.Context
	Log      *zap.SugaredLogger
}

func NewContext(ctx context.Context, mongodb *mongo.Database, mysql *gorm.DB, log *zap.SugaredLogger) *Context {
	return &Context{
		MySQLIns: mysql,
		MongoIns: mongodb,
		Ctx:      ctx,
		Log:      log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) GetMySQLIns() *gorm.DB {
	return c.MySQLIns
}

func (c *Context) GetMongoIns() *mongo.Database {
	return c.MongoIns
}
