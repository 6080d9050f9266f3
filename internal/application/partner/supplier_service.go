package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	orderRepo    procurement.PurchaseOrderRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	orderRepo procurement.PurchaseOrderRepository,
) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this email already exists")
	}

	supplier, err := partner.NewSupplier(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	if req.ContactPerson != "" || req.Phone != "" || req.Address != "" || req.Notes != "" {
		if err := supplier.Update(req.Name, req.ContactPerson, req.Phone, req.Address, req.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
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

	suppliers, total, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for _, supplier := range suppliers {
		responses = append(responses, ToSupplierResponse(supplier))
	}

	return responses, total, nil
}

// Update updates a supplier's details
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Email != supplier.Email {
		exists, err := s.supplierRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this email already exists")
		}
		if err := supplier.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}

	if err := supplier.Update(req.Name, req.ContactPerson, req.Phone, req.Address, req.Notes); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Activate marks a supplier as active
func (s *SupplierService) Activate(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, supplierID, func(supplier *partner.Supplier) error {
		return supplier.Activate()
	})
}

// Deactivate marks a supplier as inactive
func (s *SupplierService) Deactivate(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	return s.changeStatus(ctx, supplierID, func(supplier *partner.Supplier) error {
		return supplier.Deactivate()
	})
}

func (s *SupplierService) changeStatus(ctx context.Context, supplierID uuid.UUID, change func(*partner.Supplier) error) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if err := change(supplier); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. A supplier referenced by products or purchase
// orders cannot be deleted
func (s *SupplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return err
	}

	productCount, err := s.productRepo.CountBySupplier(ctx, supplierID)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return shared.NewDomainError("CONFLICT", "Supplier is referenced by products")
	}

	orderCount, err := s.orderRepo.CountBySupplier(ctx, supplierID)
	if err != nil {
		return err
	}
	if orderCount > 0 {
		return shared.NewDomainError("CONFLICT", "Supplier is referenced by purchase orders")
	}

	return s.supplierRepo.Delete(ctx, supplierID)
}
