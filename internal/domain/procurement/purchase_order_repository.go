package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds an order by its human-readable number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds orders matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*PurchaseOrder, int64, error)

	// CountBySupplier counts orders placed with a supplier
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// CountByStatus counts orders per status
	CountByStatus(ctx context.Context) (map[PurchaseOrderStatus]int64, error)

	// NextOrderNumber generates the next sequential order number
	NextOrderNumber(ctx context.Context) (string, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, order *PurchaseOrder) error

	// Delete removes a draft order by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
