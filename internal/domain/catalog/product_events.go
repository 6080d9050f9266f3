package catalog

import (
	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductUpdated      = "ProductUpdated"
	EventTypeProductPriceChanged = "ProductPriceChanged"
	EventTypeProductDiscontinued = "ProductDiscontinued"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID  `json:"product_id"`
	SKU        string     `json:"sku"`
	Name       string     `json:"name"`
	Unit       string     `json:"unit"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		Unit:            product.Unit,
		CategoryID:      product.CategoryID,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID  `json:"product_id"`
	SKU        string     `json:"sku"`
	Name       string     `json:"name"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		CategoryID:      product.CategoryID,
	}
}

// ProductPriceChangedEvent is published when product prices change
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID        uuid.UUID       `json:"product_id"`
	OldPurchasePrice decimal.Decimal `json:"old_purchase_price"`
	OldSellingPrice  decimal.Decimal `json:"old_selling_price"`
	NewPurchasePrice decimal.Decimal `json:"new_purchase_price"`
	NewSellingPrice  decimal.Decimal `json:"new_selling_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(product *Product, oldPurchase, oldSelling decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeProductPriceChanged, AggregateTypeProduct, product.ID),
		ProductID:        product.ID,
		OldPurchasePrice: oldPurchase,
		OldSellingPrice:  oldSelling,
		NewPurchasePrice: product.PurchasePrice,
		NewSellingPrice:  product.SellingPrice,
	}
}

// ProductDiscontinuedEvent is published when a product is discontinued
type ProductDiscontinuedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
}

// NewProductDiscontinuedEvent creates a new ProductDiscontinuedEvent
func NewProductDiscontinuedEvent(product *Product) *ProductDiscontinuedEvent {
	return &ProductDiscontinuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDiscontinued, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
	}
}
