package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	supplierRepo partner.SupplierRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	supplierRepo partner.SupplierRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Barcode != "" {
		if err := product.SetBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		product.SetCategory(req.CategoryID)
	}
	if req.SupplierID != nil {
		product.SetSupplier(req.SupplierID)
	}
	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchase := product.PurchasePrice
		selling := product.SellingPrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if err := product.SetPrices(purchase, selling); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by its SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}

	products, total, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, ToProductResponse(product))
	}

	return responses, total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.CategoryID, req.SupplierID); err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetBarcode(req.Barcode); err != nil {
		return nil, err
	}
	product.SetCategory(req.CategoryID)
	product.SetSupplier(req.SupplierID)

	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchase := product.PurchasePrice
		selling := product.SellingPrice
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		if req.SellingPrice != nil {
			selling = *req.SellingPrice
		}
		if err := product.SetPrices(purchase, selling); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate makes a product active again
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, productID, func(p *catalog.Product) error { return p.Activate() })
}

// Deactivate hides a product from normal operations
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, productID, func(p *catalog.Product) error { return p.Deactivate() })
}

// Discontinue permanently retires a product
func (s *ProductService) Discontinue(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, productID, func(p *catalog.Product) error { return p.Discontinue() })
}

func (s *ProductService) changeStatus(ctx context.Context, productID uuid.UUID, change func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := change(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}

func (s *ProductService) checkReferences(ctx context.Context, categoryID, supplierID *uuid.UUID) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
			return err
		}
	}
	if supplierID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *supplierID); err != nil {
			return err
		}
	}
	return nil
}
