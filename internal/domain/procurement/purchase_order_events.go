package procurement

import (
	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants
const (
	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderSubmitted = "PurchaseOrderSubmitted"
	EventTypePurchaseOrderReceived  = "PurchaseOrderReceived"
	EventTypePurchaseOrderCancelled = "PurchaseOrderCancelled"
)

// PurchaseOrderCreatedEvent is published when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
	}
}

// PurchaseOrderSubmittedEvent is published when a draft order is opened
type PurchaseOrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderSubmittedEvent creates a new PurchaseOrderSubmittedEvent
func NewPurchaseOrderSubmittedEvent(order *PurchaseOrder) *PurchaseOrderSubmittedEvent {
	return &PurchaseOrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderSubmitted, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount,
	}
}

// ReceivedItem is an item snapshot carried by the received event
type ReceivedItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// PurchaseOrderReceivedEvent is published when an order is fully received
// The inventory context subscribes to it and books the IN movements
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID      `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	WarehouseID uuid.UUID      `json:"warehouse_id"`
	ReceivedBy  uuid.UUID      `json:"received_by"`
	Items       []ReceivedItem `json:"items"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(order *PurchaseOrder, receivedBy uuid.UUID) *PurchaseOrderReceivedEvent {
	items := make([]ReceivedItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ReceivedItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		WarehouseID:     order.WarehouseID,
		ReceivedBy:      receivedBy,
		Items:           items,
	}
}

// PurchaseOrderCancelledEvent is published when an order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(order *PurchaseOrder, reason string) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          reason,
	}
}
