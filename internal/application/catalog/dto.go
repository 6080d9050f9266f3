package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	SKU           string           `json:"sku" binding:"required,max=50"`
	Name          string           `json:"name" binding:"required,max=200"`
	Description   string           `json:"description"`
	Barcode       string           `json:"barcode" binding:"max=50"`
	Unit          string           `json:"unit" binding:"required,max=20"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	MinStock      *int64           `json:"min_stock"`
}

// UpdateProductRequest is the input for updating a product
type UpdateProductRequest struct {
	Name          string           `json:"name" binding:"required,max=200"`
	Description   string           `json:"description"`
	Barcode       string           `json:"barcode" binding:"max=50"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	MinStock      *int64           `json:"min_stock"`
}

// ProductListFilter carries list query parameters
type ProductListFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	Search     string
	Status     string
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
}

// ProductResponse is the outward representation of a product
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Barcode       string          `json:"barcode"`
	Unit          string          `json:"unit"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	MinStock      int64           `json:"min_stock"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToProductResponse maps a product aggregate to its response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Barcode:       p.Barcode,
		Unit:          p.Unit,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		MinStock:      p.MinStock,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// CreateCategoryRequest is the input for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is the input for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CategoryResponse is the outward representation of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse maps a category aggregate to its response DTO
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
