package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

func TestStockRecordRepositorySave(t *testing.T) {
	t.Run("creates a fresh record", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormStockRecordRepository(db)
		product := seedProduct(t, db, "SKU-001", "Widget")
		wh := seedWarehouse(t, db, "Main")

		record, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(testCtx(), record))

		found, err := repo.FindByID(testCtx(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), found.Quantity)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("creates a record that booked stock before its first save", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormStockRecordRepository(db)
		product := seedProduct(t, db, "SKU-001", "Widget")
		wh := seedWarehouse(t, db, "Main")

		record, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
		require.NoError(t, err)
		_, err = record.ApplyAdjustment(inventory.AdjustmentTypeAdd, 25, "initial stock", testUserID())
		require.NoError(t, err)
		require.Equal(t, 2, record.Version)

		require.NoError(t, repo.Save(testCtx(), record))

		found, err := repo.FindByID(testCtx(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(25), found.Quantity)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("updates an existing record", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormStockRecordRepository(db)
		product := seedProduct(t, db, "SKU-001", "Widget")
		wh := seedWarehouse(t, db, "Main")

		record, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(testCtx(), record))

		_, err = record.ApplyMovement(inventory.MovementTypeIn, 10, "receipt", "", testUserID())
		require.NoError(t, err)
		require.NoError(t, repo.Save(testCtx(), record))

		found, err := repo.FindByID(testCtx(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), found.Quantity)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewGormStockRecordRepository(db)
		product := seedProduct(t, db, "SKU-001", "Widget")
		wh := seedWarehouse(t, db, "Main")

		record, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
		require.NoError(t, err)
		_, err = record.ApplyAdjustment(inventory.AdjustmentTypeAdd, 10, "initial stock", testUserID())
		require.NoError(t, err)
		require.NoError(t, repo.Save(testCtx(), record))

		// Two actors load version 2 and both try to write version 3.
		first, err := repo.FindByID(testCtx(), record.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(testCtx(), record.ID)
		require.NoError(t, err)

		_, err = first.ApplyMovement(inventory.MovementTypeOut, 3, "pick", "", testUserID())
		require.NoError(t, err)
		require.NoError(t, repo.Save(testCtx(), first))

		_, err = second.ApplyMovement(inventory.MovementTypeOut, 5, "pick", "", testUserID())
		require.NoError(t, err)
		err = repo.Save(testCtx(), second)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		found, err := repo.FindByID(testCtx(), record.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), found.Quantity)
	})
}

func TestStockRecordRepositorySaveWithLedger(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockRecordRepository(db)
	ledger := NewGormLedgerRepository(db)
	product := seedProduct(t, db, "SKU-001", "Widget")
	wh := seedWarehouse(t, db, "Main")

	record, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
	require.NoError(t, err)
	movement, err := record.ApplyMovement(inventory.MovementTypeIn, 40, "receipt", "", testUserID())
	require.NoError(t, err)
	adjustment, err := record.ApplyAdjustment(inventory.AdjustmentTypeRemove, 5, "damaged", testUserID())
	require.NoError(t, err)

	err = repo.SaveWithLedger(testCtx(),
		[]*inventory.StockRecord{record},
		[]*inventory.StockMovement{movement},
		[]*inventory.StockAdjustment{adjustment})
	require.NoError(t, err)

	found, err := repo.FindByID(testCtx(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(35), found.Quantity)

	entries, total, err := ledger.FindLedger(testCtx(), record.ID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)
}

func TestStockRecordRepositoryFindBySlot(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockRecordRepository(db)
	product := seedProduct(t, db, "SKU-001", "Widget")
	wh := seedWarehouse(t, db, "Main")

	location, err := wh.NewLocation("A-01", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(location).Error)

	unplaced, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(testCtx(), unplaced))

	placed, err := inventory.NewStockRecord(product.ID, wh.ID, &location.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(testCtx(), placed))

	found, err := repo.FindBySlot(testCtx(), product.ID, wh.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, unplaced.ID, found.ID)

	found, err = repo.FindBySlot(testCtx(), product.ID, wh.ID, &location.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, found.ID)

	other := seedWarehouse(t, db, "Overflow")
	_, err = repo.FindBySlot(testCtx(), product.ID, other.ID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStockRecordRepositoryCountByWarehouse(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockRecordRepository(db)
	wh := seedWarehouse(t, db, "Main")
	empty := seedWarehouse(t, db, "Overflow")

	for _, sku := range []string{"SKU-001", "SKU-002"} {
		product := seedProduct(t, db, sku, "Widget "+sku)
		record, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(testCtx(), record))
	}

	count, err := repo.CountByWarehouse(testCtx(), wh.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByWarehouse(testCtx(), empty.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestStockRecordRepositoryFindAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockRecordRepository(db)

	widget := seedProduct(t, db, "SKU-001", "Widget")
	gadget := seedProduct(t, db, "SKU-002", "Gadget")
	main := seedWarehouse(t, db, "Main")
	overflow := seedWarehouse(t, db, "Overflow")

	shelf, err := main.NewLocation("A-01", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(shelf).Error)

	seed := func(product *catalog.Product, warehouseID uuid.UUID, locationID *uuid.UUID, quantity int64) *inventory.StockRecord {
		record, err := inventory.NewStockRecord(product.ID, warehouseID, locationID)
		require.NoError(t, err)
		if quantity > 0 {
			_, err = record.ApplyAdjustment(inventory.AdjustmentTypeAdd, quantity, "seed", testUserID())
			require.NoError(t, err)
		}
		require.NoError(t, repo.Save(testCtx(), record))
		return record
	}

	first := seed(widget, main.ID, &shelf.ID, 30)
	second := seed(widget, overflow.ID, nil, 12)
	third := seed(gadget, main.ID, nil, 7)

	t.Run("warehouse filter keeps only matching records in order", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "created_at"
		filter.OrderDir = "asc"
		filter.Filters["warehouse_id"] = main.ID

		records, total, err := repo.FindAll(testCtx(), filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, records, 2)
		assert.Equal(t, first.ID, records[0].ID)
		assert.Equal(t, third.ID, records[1].ID)
	})

	t.Run("location filter narrows to the slot", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["location_id"] = shelf.ID

		records, total, err := repo.FindAll(testCtx(), filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, first.ID, records[0].ID)
	})

	t.Run("search matches product name case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "wiDGet"

		records, total, err := repo.FindAll(testCtx(), filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		for _, record := range records {
			assert.Equal(t, widget.ID, record.ProductID)
		}
	})

	t.Run("search matches warehouse and location names", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "overflow"

		records, total, err := repo.FindAll(testCtx(), filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, second.ID, records[0].ID)

		filter.Search = "a-01"
		records, total, err = repo.FindAll(testCtx(), filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, first.ID, records[0].ID)
	})

	t.Run("search matches quantity", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "12"

		records, total, err := repo.FindAll(testCtx(), filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, second.ID, records[0].ID)
	})

	t.Run("search with no match returns nothing", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "no such record"

		records, total, err := repo.FindAll(testCtx(), filter)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, records)
	})
}

func TestStockRecordRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormStockRecordRepository(db)
	product := seedProduct(t, db, "SKU-001", "Widget")
	wh := seedWarehouse(t, db, "Main")

	record, err := inventory.NewStockRecord(product.ID, wh.ID, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(testCtx(), record))

	require.NoError(t, repo.Delete(testCtx(), record.ID))
	assert.ErrorIs(t, repo.Delete(testCtx(), record.ID), shared.ErrNotFound)
}
