package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByName finds a warehouse by its name
	FindByName(ctx context.Context, name string) (*Warehouse, error)

	// FindAll finds warehouses matching the filter with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Warehouse, int64, error)

	// ExistsByName checks if a warehouse name is already taken
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, warehouse *Warehouse) error

	// Delete removes a warehouse by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByWarehouse finds all locations of a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*Location, error)

	// ExistsByName checks if a location name is taken within a warehouse
	ExistsByName(ctx context.Context, warehouseID uuid.UUID, name string) (bool, error)

	// Save creates or updates a location
	Save(ctx context.Context, location *Location) error

	// Delete removes a location by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
