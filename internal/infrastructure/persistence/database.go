package persistence

import (
	"fmt"
	"time"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/warehouse"
	"github.com/ims/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the gorm connection handed to every repository.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a postgres connection with SQL logging off.
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return open(cfg, logger.Silent)
}

// NewDatabaseWithLogger opens a connection with the given gorm log level,
// used in development to see generated SQL.
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*Database, error) {
	return open(cfg, logLevel)
}

func open(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*Database, error) {
	// Repositories manage transactions explicitly where they need them, so
	// gorm's per-write default transaction is skipped.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping reports connection health for the health endpoint.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Transaction runs fn inside a single database transaction.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

// AutoMigrate creates or updates the schema for all aggregates. Production
// deployments run versioned SQL migrations instead; this serves development
// and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.User{},
		&catalog.Category{},
		&partner.Supplier{},
		&warehouse.Warehouse{},
		&warehouse.Location{},
		&catalog.Product{},
		&inventory.StockRecord{},
		&inventory.StockMovement{},
		&inventory.StockAdjustment{},
		&procurement.PurchaseOrder{},
		&procurement.PurchaseOrderItem{},
	)
}
