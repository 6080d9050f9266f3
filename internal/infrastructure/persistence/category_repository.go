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

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds categories matching the filter with pagination
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Category, int64, error) {
	base := r.db.WithContext(ctx).Model(&catalog.Category{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		base = base.Where("LOWER(name) LIKE ?", pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*catalog.Category
	query := applyPagination(base.Session(&gorm.Session{}), filter, CommonSortFields)
	if err := query.Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

// ExistsByName checks if a category name is already taken
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Category{}).
		Where("name = ?", strings.TrimSpace(name)).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category by ID
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
