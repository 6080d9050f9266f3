package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByEmail finds a supplier by its email
	FindByEmail(ctx context.Context, email string) (*Supplier, error)

	// FindAll finds suppliers matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Supplier, int64, error)

	// ExistsByEmail checks if a supplier email is already taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete removes a supplier by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
