package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/shared"
)

// GormPurchaseOrderRepository implements procurement.PurchaseOrderRepository
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GORM purchase order repository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its human-readable number
func (r *GormPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	var order procurement.PurchaseOrder
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders matching the filter with pagination
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*procurement.PurchaseOrder, int64, error) {
	base := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*procurement.PurchaseOrder
	query := applyPagination(base.Session(&gorm.Session{}), filter, PurchaseOrderSortFields)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountBySupplier counts orders placed with a supplier
func (r *GormPurchaseOrderRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}

// CountByStatus counts orders per status
func (r *GormPurchaseOrderRepository) CountByStatus(ctx context.Context) (map[procurement.PurchaseOrderStatus]int64, error) {
	type statusCount struct {
		Status procurement.PurchaseOrderStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[procurement.PurchaseOrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// NextOrderNumber generates the next sequential order number, scoped to the
// current year, for example PO-2026-0042
func (r *GormPurchaseOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	year := time.Now().UTC().Year()
	prefix := fmt.Sprintf("PO-%d-", year)

	var last string
	err := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Select("order_number").
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	sequence := 1
	if last != "" {
		var parsed int
		if _, err := fmt.Sscanf(strings.TrimPrefix(last, prefix), "%d", &parsed); err == nil {
			sequence = parsed + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, sequence), nil
}

// Save creates or updates an order and its items. Items are replaced
// wholesale because draft editing rewrites the whole line set.
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&procurement.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		for i := range order.Items {
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an order and its items by ID
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&procurement.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(order_number) LIKE ?", pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		}
	}
	return query
}

var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
