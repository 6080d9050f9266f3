package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/warehouse"
)

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Address  string `json:"address" binding:"omitempty,max=500"`
	Capacity int64  `json:"capacity" binding:"omitempty,min=0"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Address  string `json:"address" binding:"omitempty,max=500"`
	Capacity int64  `json:"capacity" binding:"omitempty,min=0"`
}

// CreateLocationRequest represents a request to create a location inside a warehouse
type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// WarehouseListFilter represents filters for listing warehouses
type WarehouseListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
}

// WarehouseResponse represents warehouse information in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Capacity  int64     `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationResponse represents location information in API responses
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToWarehouseResponse converts a warehouse aggregate to a response DTO
func ToWarehouseResponse(w *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		Capacity:  w.Capacity,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToLocationResponse converts a location entity to a response DTO
func ToLocationResponse(l *warehouse.Location) *LocationResponse {
	return &LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
}
