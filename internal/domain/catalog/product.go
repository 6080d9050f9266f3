package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a product/SKU in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	SKU           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	Barcode       string          `gorm:"type:varchar(50);index"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	Unit          string          `gorm:"type:varchar(20);not null"`             // Base unit (e.g., "pcs", "kg", "box")
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Cost price
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Selling price
	MinStock      int64           `gorm:"not null;default:0"`                    // Low stock alert threshold
	Status        ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, unit string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(strings.TrimSpace(sku)),
		Name:              name,
		Unit:              unit,
		PurchasePrice:     decimal.Zero,
		SellingPrice:      decimal.Zero,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// UpdateSKU updates the product's SKU
// Note: other systems may reference the SKU, use with caution
func (p *Product) UpdateSKU(sku string) error {
	if err := validateSKU(sku); err != nil {
		return err
	}

	p.SKU = strings.ToUpper(strings.TrimSpace(sku))
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if barcode != "" && len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetSupplier sets the product's default supplier
func (p *Product) SetSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPrices sets both purchase and selling prices
func (p *Product) SetPrices(purchasePrice, sellingPrice decimal.Decimal) error {
	if purchasePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	oldPurchasePrice := p.PurchasePrice
	oldSellingPrice := p.SellingPrice

	p.PurchasePrice = purchasePrice
	p.SellingPrice = sellingPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPurchasePrice, oldSellingPrice))

	return nil
}

// SetMinStock sets the low stock alert threshold
func (p *Product) SetMinStock(minStock int64) error {
	if minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}

	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate makes the product available again
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate hides the product from normal operations
func (p *Product) Deactivate() error {
	if p.Status != ProductStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active products can be deactivated")
	}

	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Discontinue permanently retires the product
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDiscontinuedEvent(p))

	return nil
}

// IsActive reports whether the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnit(unit string) error {
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return nil
}
