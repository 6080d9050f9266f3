package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	var wh warehouse.Warehouse
	if err := r.db.WithContext(ctx).First(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wh, nil
}

// FindByName finds a warehouse by its name
func (r *GormWarehouseRepository) FindByName(ctx context.Context, name string) (*warehouse.Warehouse, error) {
	var wh warehouse.Warehouse
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wh, nil
}

// FindAll finds warehouses matching the filter with pagination
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*warehouse.Warehouse, int64, error) {
	base := r.db.WithContext(ctx).Model(&warehouse.Warehouse{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var warehouses []*warehouse.Warehouse
	query := applyPagination(base.Session(&gorm.Session{}), filter, WarehouseSortFields)
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, 0, err
	}

	return warehouses, total, nil
}

// ExistsByName checks if a warehouse name is already taken
func (r *GormWarehouseRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&warehouse.Warehouse{}).
		Where("name = ?", strings.TrimSpace(name)).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, wh *warehouse.Warehouse) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

// Delete removes a warehouse by ID
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehouse.Warehouse{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ warehouse.WarehouseRepository = (*GormWarehouseRepository)(nil)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	var loc warehouse.Location
	if err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}

// FindByWarehouse finds all locations of a warehouse
func (r *GormLocationRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*warehouse.Location, error) {
	var locations []*warehouse.Location
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("name ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// ExistsByName checks if a location name is taken within a warehouse
func (r *GormLocationRepository) ExistsByName(ctx context.Context, warehouseID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&warehouse.Location{}).
		Where("warehouse_id = ? AND name = ?", warehouseID, strings.TrimSpace(name)).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *warehouse.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete removes a location by ID
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehouse.Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ warehouse.LocationRepository = (*GormLocationRepository)(nil)
