package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/inventory"
)

// CreateStockRecordRequest is the input for creating a stock record
type CreateStockRecordRequest struct {
	ProductID       uuid.UUID  `json:"product_id" binding:"required"`
	WarehouseID     uuid.UUID  `json:"warehouse_id" binding:"required"`
	LocationID      *uuid.UUID `json:"location_id"`
	InitialQuantity int64      `json:"initial_quantity" binding:"min=0"`
}

// RecordMovementRequest is the input for recording an IN or OUT movement
type RecordMovementRequest struct {
	Type      string `json:"type" binding:"required,oneof=IN OUT"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
	Reason    string `json:"reason" binding:"max=200"`
	Reference string `json:"reference" binding:"max=100"`
}

// RecordAdjustmentRequest is the input for a manual stock correction
type RecordAdjustmentRequest struct {
	Type     string `json:"type" binding:"required,oneof=ADD REMOVE"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
	Reason   string `json:"reason" binding:"max=200"`
}

// SetQuantityRequest sets the absolute on-hand quantity
type SetQuantityRequest struct {
	Quantity int64  `json:"quantity" binding:"min=0"`
	Reason   string `json:"reason" binding:"max=200"`
}

// TransferRequest moves stock between two warehouse slots
type TransferRequest struct {
	ToWarehouseID uuid.UUID  `json:"to_warehouse_id" binding:"required"`
	ToLocationID  *uuid.UUID `json:"to_location_id"`
	Quantity      int64      `json:"quantity" binding:"required,gt=0"`
	Reason        string     `json:"reason" binding:"max=200"`
	Reference     string     `json:"reference" binding:"max=100"`
}

// StockListFilter carries stock list query parameters. Search matches
// case-insensitively against product, warehouse and location names as well
// as the quantity
type StockListFilter struct {
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
	ProductID   *uuid.UUID
	WarehouseID *uuid.UUID
	LocationID  *uuid.UUID
	Search      string
}

// LedgerListFilter carries ledger query parameters
type LedgerListFilter struct {
	Page        int
	PageSize    int
	ProductID   *uuid.UUID
	WarehouseID *uuid.UUID
	Type        string
	From        *time.Time
	To          *time.Time
}

// StockRecordResponse is the outward representation of a stock record
type StockRecordResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	WarehouseID uuid.UUID  `json:"warehouse_id"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
	Quantity    int64      `json:"quantity"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToStockRecordResponse maps a stock record to its response DTO
func ToStockRecordResponse(r *inventory.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		WarehouseID: r.WarehouseID,
		LocationID:  r.LocationID,
		Quantity:    r.Quantity,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// MovementResponse is the outward representation of a stock movement
type MovementResponse struct {
	ID            uuid.UUID `json:"id"`
	StockRecordID uuid.UUID `json:"stock_record_id"`
	ProductID     uuid.UUID `json:"product_id"`
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Reason        string    `json:"reason"`
	Reference     string    `json:"reference,omitempty"`
	CreatedBy     uuid.UUID `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToMovementResponse maps a movement to its response DTO
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		StockRecordID: m.StockRecordID,
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		Type:          string(m.Type),
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		Reference:     m.Reference,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

// AdjustmentResponse is the outward representation of a stock adjustment
type AdjustmentResponse struct {
	ID            uuid.UUID `json:"id"`
	StockRecordID uuid.UUID `json:"stock_record_id"`
	ProductID     uuid.UUID `json:"product_id"`
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Reason        string    `json:"reason"`
	ApprovedBy    uuid.UUID `json:"approved_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToAdjustmentResponse maps an adjustment to its response DTO
func ToAdjustmentResponse(a *inventory.StockAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:            a.ID,
		StockRecordID: a.StockRecordID,
		ProductID:     a.ProductID,
		WarehouseID:   a.WarehouseID,
		Type:          string(a.Type),
		Quantity:      a.Quantity,
		Reason:        a.Reason,
		ApprovedBy:    a.ApprovedBy,
		CreatedAt:     a.CreatedAt,
	}
}

// TransferResponse reports the outcome of a stock transfer
type TransferResponse struct {
	From StockRecordResponse `json:"from"`
	To   StockRecordResponse `json:"to"`
	Out  MovementResponse    `json:"out"`
	In   MovementResponse    `json:"in"`
}
