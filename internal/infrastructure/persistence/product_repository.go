package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByBarcode finds a product by its barcode
func (r *GormProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds products matching the filter with pagination
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	base := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*catalog.Product
	query := applyPagination(base.Session(&gorm.Session{}), filter, ProductSortFields)
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	var products []*catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsBySKU checks if a SKU is already taken
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("sku = ?", strings.ToUpper(strings.TrimSpace(sku))).
		Count(&count).Error
	return count > 0, err
}

// CountByCategory counts products assigned to a category
func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// CountBySupplier counts products assigned to a supplier
func (r *GormProductRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete removes a product by ID
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(sku) LIKE ? OR LOWER(name) LIKE ? OR LOWER(barcode) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
