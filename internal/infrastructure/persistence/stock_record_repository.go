package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindBySlot finds the record for a product/warehouse/location slot
func (r *GormStockRecordRepository) FindBySlot(ctx context.Context, productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*inventory.StockRecord, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	} else {
		query = query.Where("location_id IS NULL")
	}

	var record inventory.StockRecord
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds stock records matching the filter with pagination
func (r *GormStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.StockRecord, int64, error) {
	base := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*inventory.StockRecord
	query := applyPagination(base.Session(&gorm.Session{}), filter, StockRecordSortFields)
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// FindByProduct finds all records of a product across warehouses
func (r *GormStockRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.StockRecord, error) {
	var records []*inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save creates or updates a stock record with an optimistic version check
func (r *GormStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	return saveRecordTx(r.db.WithContext(ctx), record)
}

// SaveWithLedger atomically saves stock records together with the ledger
// entries they produced
func (r *GormStockRecordRepository) SaveWithLedger(ctx context.Context, records []*inventory.StockRecord, movements []*inventory.StockMovement, adjustments []*inventory.StockAdjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := saveRecordTx(tx, record); err != nil {
				return err
			}
		}
		for _, movement := range movements {
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
		}
		for _, adjustment := range adjustments {
			if err := tx.Create(adjustment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a stock record by ID
func (r *GormStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByWarehouse counts stock records stored in a warehouse
func (r *GormStockRecordRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
		Where("warehouse_id = ?", warehouseID).
		Count(&count).Error
	return count, err
}

// saveRecordTx inserts new records and updates existing ones guarded by the
// version column. A mismatch on an existing row means another transaction
// changed the record since it was loaded. Fresh records may already carry a
// version above 1 when they booked movements before their first save, so a
// missed update falls back to an existence check before inserting.
func saveRecordTx(tx *gorm.DB, record *inventory.StockRecord) error {
	if record.Version <= 1 {
		return tx.Create(record).Error
	}

	result := tx.Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":   record.Quantity,
			"version":    record.Version,
			"updated_at": record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&inventory.StockRecord{}).Where("id = ?", record.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrConcurrencyConflict
	}
	return tx.Create(record).Error
}

func (r *GormStockRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"product_id IN (SELECT id FROM products WHERE LOWER(name) LIKE ?)"+
				" OR warehouse_id IN (SELECT id FROM warehouses WHERE LOWER(name) LIKE ?)"+
				" OR location_id IN (SELECT id FROM locations WHERE LOWER(name) LIKE ?)"+
				" OR CAST(quantity AS TEXT) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		}
	}
	return query
}

var _ inventory.StockRecordRepository = (*GormStockRecordRepository)(nil)
