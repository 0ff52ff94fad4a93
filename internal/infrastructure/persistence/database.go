package persistence

import (
	"fmt"
	"time"

	"github.com/respawnadega/storefront/internal/infrastructure/config"
	"github.com/respawnadega/storefront/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection used for durable cart records
type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens the database selected by cfg.Storage.Driver. The sqlite
// driver migrates its schema on open; postgres schemas are managed by
// cmd/migrate.
func NewDatabase(cfg *config.Config, gormLog gormlogger.Interface) (*Database, error) {
	if gormLog == nil {
		gormLog = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	gcfg := &gorm.Config{
		Logger:                 gormLog,
		SkipDefaultTransaction: true,
	}

	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		return openSQLite(cfg.Storage.SQLitePath, gcfg)
	case config.StoragePostgres:
		return openPostgres(&cfg.Database, gcfg)
	default:
		return nil, fmt.Errorf("storage driver %q is not backed by a database", cfg.Storage.Driver)
	}
}

func openSQLite(path string, gcfg *gorm.Config) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// sqlite serializes writers; a single connection avoids "database is locked"
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.CartRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
	}
	return &Database{DB: db, Driver: config.StorageSQLite}, nil
}

func openPostgres(cfg *config.DatabaseConfig, gcfg *gorm.Config) (*Database, error) {
	gcfg.PrepareStmt = true
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Database{DB: db, Driver: config.StoragePostgres}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// ConnectionStats holds the pool figures reported by the health endpoint
type ConnectionStats struct {
	MaxOpenConnections int   `json:"max_open_connections"`
	OpenConnections    int   `json:"open_connections"`
	InUse              int   `json:"in_use"`
	Idle               int   `json:"idle"`
	WaitCount          int64 `json:"wait_count"`
}

// Stats returns database connection pool statistics
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	s := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
	}, nil
}
