package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of a purchase order
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreateOrderRequest is the input for creating a purchase order
type CreateOrderRequest struct {
	SupplierID           uuid.UUID          `json:"supplier_id" binding:"required"`
	WarehouseID          uuid.UUID          `json:"warehouse_id" binding:"required"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	Notes                string             `json:"notes"`
	Items                []OrderItemRequest `json:"items" binding:"dive"`
}

// UpdateOrderRequest replaces the editable fields of a draft order
type UpdateOrderRequest struct {
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	Items                []OrderItemRequest `json:"items" binding:"dive"`
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// OrderListFilter carries list query parameters
type OrderListFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	Search     string
	Status     string
	SupplierID *uuid.UUID
}

// OrderItemResponse is the outward representation of an order line
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse is the outward representation of a purchase order
type OrderResponse struct {
	ID                   uuid.UUID           `json:"id"`
	OrderNumber          string              `json:"order_number"`
	SupplierID           uuid.UUID           `json:"supplier_id"`
	WarehouseID          uuid.UUID           `json:"warehouse_id"`
	Status               string              `json:"status"`
	Items                []OrderItemResponse `json:"items"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty"`
	ReceivedDate         *time.Time          `json:"received_date,omitempty"`
	Notes                string              `json:"notes"`
	CreatedBy            uuid.UUID           `json:"created_by"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its response DTO
func ToOrderResponse(o *procurement.PurchaseOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			Amount:      item.Amount,
		})
	}

	return OrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		SupplierID:           o.SupplierID,
		WarehouseID:          o.WarehouseID,
		Status:               string(o.Status),
		Items:                items,
		TotalAmount:          o.TotalAmount,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		ReceivedDate:         o.ReceivedDate,
		Notes:                o.Notes,
		CreatedBy:            o.CreatedBy,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}
