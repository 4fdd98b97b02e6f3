package database

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/crowdkit/crowdkit/pkg/log"
)

// ProviderSet is the Wire provider set for the database package.
var ProviderSet = wire.NewSet(NewManager)

// Manager owns the connection for the backend selected at startup. Exactly
// one of MySQL/Mongo is live for a given process.
type Manager interface {
	// Backend returns the configured backend identifier.
	Backend() string

	// MySQL returns the gorm handle, nil unless Backend() == BackendMySQL.
	MySQL() *gorm.DB

	// Mongo returns the mongo client, nil unless Backend() == BackendMongo.
	Mongo() *MongoClient

	// Close closes the active connection.
	Close() error
}

type managerImpl struct {
	backend string
	mysql   *gorm.DB
	mongo   *MongoClient
}

func (m *managerImpl) Backend() string {
	return m.backend
}

func (m *managerImpl) MySQL() *gorm.DB {
	return m.mysql
}

func (m *managerImpl) Mongo() *MongoClient {
	return m.mongo
}

func (m *managerImpl) Close() error {
	if m.mysql != nil {
		sqlDB, err := m.mysql.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				return fmt.Errorf("failed to close MySQL: %w", err)
			}
		}
	}
	if m.mongo != nil {
		if err := m.mongo.Close(context.Background()); err != nil {
			return fmt.Errorf("failed to close MongoDB: %w", err)
		}
	}
	return nil
}

// NewManager connects the backend named in the configuration. The choice is
// made once here; repositories receive the manager and never branch on the
// backend themselves.
func NewManager(cfg Database) (Manager, error) {
	m := &managerImpl{backend: cfg.Backend}

	switch cfg.Backend {
	case BackendMySQL:
		db, err := newMySQLConnection(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect MySQL: %w", err)
		}
		m.mysql = db
		log.Info("MySQL database connected successfully")
	case BackendMongo:
		mc, err := NewMongoDB(context.Background(), cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
		}
		m.mongo = mc
		log.Info("MongoDB database connected successfully")
	default:
		return nil, fmt.Errorf("unsupported database backend: %q", cfg.Backend)
	}

	return m, nil
}
