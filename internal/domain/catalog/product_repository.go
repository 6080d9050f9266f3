package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByBarcode finds a product by its barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindAll finds products matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, int64, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)

	// ExistsBySKU checks if a SKU is already taken
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// CountByCategory counts products assigned to a category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// CountBySupplier counts products assigned to a supplier
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds categories matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Category, int64, error)

	// ExistsByName checks if a category name is already taken
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete removes a category by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
