package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// StockRecordRepository defines the interface for stock record persistence
type StockRecordRepository interface {
	// FindByID finds a stock record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// FindBySlot finds the record for a product/warehouse/location slot
	FindBySlot(ctx context.Context, productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*StockRecord, error)

	// FindAll finds stock records matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*StockRecord, int64, error)

	// FindByProduct finds all records of a product across warehouses
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*StockRecord, error)

	// Save creates or updates a stock record with an optimistic version check
	// It returns shared.ErrConcurrencyConflict when the stored version differs
	Save(ctx context.Context, record *StockRecord) error

	// SaveWithLedger atomically saves stock records together with the ledger
	// entries they produced. Used for movements, adjustments and transfers
	SaveWithLedger(ctx context.Context, records []*StockRecord, movements []*StockMovement, adjustments []*StockAdjustment) error

	// Delete removes a stock record by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByWarehouse counts stock records stored in a warehouse
	CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error)
}

// LedgerRepository provides read access to the movement history
type LedgerRepository interface {
	// FindMovements finds movements matching the filter with pagination
	FindMovements(ctx context.Context, filter shared.Filter) ([]*StockMovement, int64, error)

	// FindAdjustments finds adjustments matching the filter with pagination
	FindAdjustments(ctx context.Context, filter shared.Filter) ([]*StockAdjustment, int64, error)

	// FindLedger returns the merged movement and adjustment history of a
	// stock record, newest first
	FindLedger(ctx context.Context, stockRecordID uuid.UUID, filter shared.Filter) ([]*LedgerEntry, int64, error)
}
