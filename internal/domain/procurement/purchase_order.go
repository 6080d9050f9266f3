package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusOpen      PurchaseOrderStatus = "open"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a known PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusOpen,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusOpen || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusOpen:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductSKU  string          `gorm:"type:varchar(50);not null"`
	Quantity    int64           `gorm:"not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitCost
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order line item
func NewPurchaseOrderItem(orderID, productID uuid.UUID, productName, productSKU string, quantity int64, unitCost decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		Quantity:    quantity,
		UnitCost:    unitCost,
		Amount:      unitCost.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// PurchaseOrder is the aggregate root for ordering goods from a supplier
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber          string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID           uuid.UUID           `gorm:"type:uuid;not null;index"`
	WarehouseID          uuid.UUID           `gorm:"type:uuid;not null;index"` // Destination warehouse on receipt
	Status               PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Items                []PurchaseOrderItem `gorm:"foreignKey:OrderID"`
	TotalAmount          decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedDeliveryDate *time.Time
	ReceivedDate         *time.Time
	Notes                string    `gorm:"type:text"`
	CreatedBy            uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new draft purchase order
func NewPurchaseOrder(orderNumber string, supplierID, warehouseID, createdBy uuid.UUID) (*PurchaseOrder, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		WarehouseID:       warehouseID,
		Status:            PurchaseOrderStatusDraft,
		Items:             make([]PurchaseOrderItem, 0),
		TotalAmount:       decimal.Zero,
		CreatedBy:         createdBy,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line item. Only draft orders can be edited
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName, productSKU string, quantity int64, unitCost decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be edited")
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Product is already on this order")
		}
	}

	item, err := NewPurchaseOrderItem(o.ID, productID, productName, productSKU, quantity, unitCost)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// RemoveItem removes a line item by product. Only draft orders can be edited
func (o *PurchaseOrder) RemoveItem(productID uuid.UUID) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be edited")
	}

	for i, item := range o.Items {
		if item.ProductID == productID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.recalculateTotal()
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Product is not on this order")
}

// SetExpectedDeliveryDate sets when the order is expected to arrive
func (o *PurchaseOrder) SetExpectedDeliveryDate(date *time.Time) error {
	if o.Status != PurchaseOrderStatusDraft && o.Status != PurchaseOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot change delivery date of a closed order")
	}

	o.ExpectedDeliveryDate = date
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Submit moves a draft order to open, making it visible to the supplier
// An order without items cannot be submitted
func (o *PurchaseOrder) Submit() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusOpen) {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be submitted")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order must have at least one item")
	}

	o.Status = PurchaseOrderStatusOpen
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSubmittedEvent(o))

	return nil
}

// Receive marks an open order as fully received. It records the receipt
// date and raises the event that drives the inventory increase
func (o *PurchaseOrder) Receive(receivedBy uuid.UUID) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusReceived) {
		return shared.NewDomainError("INVALID_STATE", "Only open orders can be received")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusReceived
	o.ReceivedDate = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o, receivedBy))

	return nil
}

// Cancel cancels a draft or open order. Received orders cannot be cancelled
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Only draft or open orders can be cancelled")
	}

	o.Status = PurchaseOrderStatusCancelled
	if reason != "" {
		o.Notes = reason
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o, reason))

	return nil
}

func (o *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
