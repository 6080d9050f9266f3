package warehouse

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// Warehouse represents a physical storage site
// It is the aggregate root for warehouse-related operations
type Warehouse struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Address  string `gorm:"type:text"`
	Capacity int64  `gorm:"not null;default:0"` // Total unit capacity, 0 means unlimited
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// Location is a named slot inside a warehouse (aisle, shelf, bin)
type Location struct {
	shared.BaseEntity
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index:idx_location_warehouse_name,unique"`
	Name        string    `gorm:"type:varchar(100);not null;index:idx_location_warehouse_name,unique"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(name, address string, capacity int64) (*Warehouse, error) {
	if err := validateWarehouseName(name); err != nil {
		return nil, err
	}
	if capacity < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           address,
		Capacity:          capacity,
	}, nil
}

// Update updates the warehouse information
func (w *Warehouse) Update(name, address string, capacity int64) error {
	if err := validateWarehouseName(name); err != nil {
		return err
	}
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}

	w.Name = strings.TrimSpace(name)
	w.Address = address
	w.Capacity = capacity
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// NewLocation creates a new location inside the warehouse
func (w *Warehouse) NewLocation(name, description string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Location name cannot exceed 100 characters")
	}

	return &Location{
		BaseEntity:  shared.NewBaseEntity(),
		WarehouseID: w.ID,
		Name:        name,
		Description: description,
	}, nil
}

func validateWarehouseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot exceed 100 characters")
	}
	return nil
}
