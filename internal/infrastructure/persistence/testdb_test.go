package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/warehouse"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// The connection pool is capped at one so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, name, "pcs")
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedWarehouse(t *testing.T, db *gorm.DB, name string) *warehouse.Warehouse {
	t.Helper()
	wh, err := warehouse.NewWarehouse(name, "", 0)
	require.NoError(t, err)
	require.NoError(t, db.Create(wh).Error)
	return wh
}

func seedSupplier(t *testing.T, db *gorm.DB, name, email string) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier(name, email)
	require.NoError(t, err)
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func testUserID() uuid.UUID {
	return uuid.MustParse("c0fe0000-0000-0000-0000-000000000001")
}

func testCtx() context.Context {
	return context.Background()
}
