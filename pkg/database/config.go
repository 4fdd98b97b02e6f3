package database

import (
	"fmt"
	"time"
)

// Backend identifiers for the persistence adapter selection.
const (
	BackendMySQL = "mysql"
	BackendMongo = "mongo"
)

// MySQLConfig represents MySQL data source configuration.
type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// MongoConfig represents MongoDB data source configuration.
type MongoConfig struct {
	Uri         string   `mapstructure:"uri"`
	DBName      string   `mapstructure:"dbname"`
	Compressors []string `mapstructure:"compressors"`
	PoolSize    uint64   `mapstructure:"poolSize"`
}

// Database is the persistence configuration. Backend selects which adapter
// the whole process uses; it is read once at startup and never mixed per
// entity type afterwards.
type Database struct {
	Backend      string `mapstructure:"backend"` // mysql | mongo
	OutPut       bool   `mapstructure:"output"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxLifetime  int    `mapstructure:"maxLifeTime"`
	MaxIdleTime  int    `mapstructure:"maxIdleTime"`

	MySQL MySQLConfig `mapstructure:"mysql"`
	Mongo MongoConfig `mapstructure:"mongo"`
}

// GetConnMaxLifetime returns ConnMaxLifetime as a duration.
func GetConnMaxLifetime(maxLifetime int) time.Duration {
	if maxLifetime > 0 {
		return time.Duration(maxLifetime) * time.Second
	}
	return 300 * time.Second
}

// GetConnMaxIdleTime returns ConnMaxIdleTime as a duration.
func GetConnMaxIdleTime(maxIdleTime int) time.Duration {
	if maxIdleTime > 0 {
		return time.Duration(maxIdleTime) * time.Second
	}
	return 60 * time.Second
}

func buildMySQLDSN(c MySQLConfig) string {
	port := c.Port
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, port, c.DBName)
}
