package persistence

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
)

// GormLedgerRepository reads the movement and adjustment history written by
// the stock record repository.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindMovements finds movements matching the filter with pagination
func (r *GormLedgerRepository) FindMovements(ctx context.Context, filter shared.Filter) ([]*inventory.StockMovement, int64, error) {
	base := r.applyLedgerFilter(r.db.WithContext(ctx).Model(&inventory.StockMovement{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []*inventory.StockMovement
	query := applyPagination(base.Session(&gorm.Session{}), filter, CommonSortFields)
	if err := query.Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// FindAdjustments finds adjustments matching the filter with pagination
func (r *GormLedgerRepository) FindAdjustments(ctx context.Context, filter shared.Filter) ([]*inventory.StockAdjustment, int64, error) {
	base := r.applyLedgerFilter(r.db.WithContext(ctx).Model(&inventory.StockAdjustment{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var adjustments []*inventory.StockAdjustment
	query := applyPagination(base.Session(&gorm.Session{}), filter, CommonSortFields)
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}
	return adjustments, total, nil
}

// FindLedger returns the merged movement and adjustment history of a stock
// record, newest first. Both tables are read in full for the record and merged
// in memory; a single record's history stays small enough for that.
func (r *GormLedgerRepository) FindLedger(ctx context.Context, stockRecordID uuid.UUID, filter shared.Filter) ([]*inventory.LedgerEntry, int64, error) {
	var movements []*inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("stock_record_id = ?", stockRecordID).
		Find(&movements).Error; err != nil {
		return nil, 0, err
	}

	var adjustments []*inventory.StockAdjustment
	if err := r.db.WithContext(ctx).
		Where("stock_record_id = ?", stockRecordID).
		Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*inventory.LedgerEntry, 0, len(movements)+len(adjustments))
	for _, m := range movements {
		entries = append(entries, &inventory.LedgerEntry{
			ID:            m.ID,
			Kind:          inventory.LedgerEntryMovement,
			StockRecordID: m.StockRecordID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			Type:          string(m.Type),
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			Reference:     m.Reference,
			ActorID:       m.CreatedBy,
			OccurredAt:    m.CreatedAt,
		})
	}
	for _, a := range adjustments {
		entries = append(entries, &inventory.LedgerEntry{
			ID:            a.ID,
			Kind:          inventory.LedgerEntryAdjustment,
			StockRecordID: a.StockRecordID,
			ProductID:     a.ProductID,
			WarehouseID:   a.WarehouseID,
			Type:          string(a.Type),
			Quantity:      a.Quantity,
			Reason:        a.Reason,
			ActorID:       a.ApprovedBy,
			OccurredAt:    a.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})

	total := int64(len(entries))
	if filter.Page > 0 && filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start >= len(entries) {
			return []*inventory.LedgerEntry{}, total, nil
		}
		end := start + filter.PageSize
		if end > len(entries) {
			end = len(entries)
		}
		entries = entries[start:end]
	}
	return entries, total, nil
}

func (r *GormLedgerRepository) applyLedgerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "stock_record_id":
			query = query.Where("stock_record_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "from":
			query = query.Where("created_at >= ?", value)
		case "to":
			query = query.Where("created_at <= ?", value)
		}
	}
	return query
}

var _ inventory.LedgerRepository = (*GormLedgerRepository)(nil)
