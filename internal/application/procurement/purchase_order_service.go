package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo      procurement.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	productRepo    catalog.ProductRepository
	warehouseRepo  warehouse.WarehouseRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo procurement.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo warehouse.WarehouseRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:     orderRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, req CreateOrderRequest, createdBy uuid.UUID) (*OrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot order from an inactive supplier")
	}

	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := procurement.NewPurchaseOrder(orderNumber, req.SupplierID, req.WarehouseID, createdBy)
	if err != nil {
		return nil, err
	}

	if req.Notes != "" {
		order.Notes = req.Notes
	}
	if req.ExpectedDeliveryDate != nil {
		if err := order.SetExpectedDeliveryDate(req.ExpectedDeliveryDate); err != nil {
			return nil, err
		}
	}

	if err := s.addItems(ctx, order, req.Items); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
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
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}

	orders, total, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order))
	}

	return responses, total, nil
}

// Update replaces the items and delivery date of a draft order
func (s *PurchaseOrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		for i := len(order.Items) - 1; i >= 0; i-- {
			if err := order.RemoveItem(order.Items[i].ProductID); err != nil {
				return nil, err
			}
		}
		if err := s.addItems(ctx, order, req.Items); err != nil {
			return nil, err
		}
	}

	if err := order.SetExpectedDeliveryDate(req.ExpectedDeliveryDate); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Submit opens a draft order
func (s *PurchaseOrderService) Submit(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Submit(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Receive marks an open order as received. The resulting event drives the
// stock increase in the inventory context
func (s *PurchaseOrderService) Receive(ctx context.Context, orderID, receivedBy uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Receive(receivedBy); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels a draft or open order
func (s *PurchaseOrderService) Cancel(ctx context.Context, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes a draft order. Submitted orders are kept for the audit
// trail and can only be cancelled
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != procurement.PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be deleted")
	}
	return s.orderRepo.Delete(ctx, orderID)
}

func (s *PurchaseOrderService) addItems(ctx context.Context, order *procurement.PurchaseOrder, items []OrderItemRequest) error {
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive() {
			return shared.NewDomainError("INVALID_STATE", "Cannot order an inactive product")
		}
		if err := order.AddItem(product.ID, product.Name, product.SKU, item.Quantity, item.UnitCost); err != nil {
			return err
		}
	}
	return nil
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, order *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}

	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	if len(events) == 0 {
		return
	}

	// Event delivery is best effort, the state change already committed
	_ = s.eventPublisher.Publish(ctx, events...)
}
