package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
)

// InventoryService handles stock levels, movements and adjustments
type InventoryService struct {
	stockRepo      inventory.StockRecordRepository
	ledgerRepo     inventory.LedgerRepository
	productRepo    catalog.ProductRepository
	warehouseRepo  warehouse.WarehouseRepository
	locationRepo   warehouse.LocationRepository
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	stockRepo inventory.StockRecordRepository,
	ledgerRepo inventory.LedgerRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo warehouse.WarehouseRepository,
	locationRepo warehouse.LocationRepository,
) *InventoryService {
	return &InventoryService{
		stockRepo:     stockRepo,
		ledgerRepo:    ledgerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateStockRecord creates a stock record for a product slot, optionally
// booking an initial quantity as an ADD adjustment
func (s *InventoryService) CreateStockRecord(ctx context.Context, req CreateStockRecordRequest, userID uuid.UUID) (*StockRecordResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	if req.LocationID != nil {
		location, err := s.locationRepo.FindByID(ctx, *req.LocationID)
		if err != nil {
			return nil, err
		}
		if location.WarehouseID != req.WarehouseID {
			return nil, shared.NewDomainError("INVALID_LOCATION", "Location does not belong to the warehouse")
		}
	}

	existing, err := s.stockRepo.FindBySlot(ctx, req.ProductID, req.WarehouseID, req.LocationID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Stock record for this slot already exists")
	}

	record, err := inventory.NewStockRecord(req.ProductID, req.WarehouseID, req.LocationID)
	if err != nil {
		return nil, err
	}

	var adjustments []*inventory.StockAdjustment
	if req.InitialQuantity > 0 {
		adjustment, err := record.ApplyAdjustment(inventory.AdjustmentTypeAdd, req.InitialQuantity, "initial stock", userID)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adjustment)
	}

	if err := s.stockRepo.SaveWithLedger(ctx, []*inventory.StockRecord{record}, nil, adjustments); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)

	response := ToStockRecordResponse(record)
	return &response, nil
}

// GetStockRecord retrieves a stock record by ID
func (s *InventoryService) GetStockRecord(ctx context.Context, recordID uuid.UUID) (*StockRecordResponse, error) {
	record, err := s.stockRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	response := ToStockRecordResponse(record)
	return &response, nil
}

// ListStock retrieves stock records with filtering and pagination
func (s *InventoryService) ListStock(ctx context.Context, filter StockListFilter) ([]StockRecordResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "updated_at"
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
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.LocationID != nil {
		domainFilter.Filters["location_id"] = *filter.LocationID
	}

	records, total, err := s.stockRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToStockRecordResponse(record))
	}

	return responses, total, nil
}

// RecordMovement books an IN or OUT movement against a stock record
func (s *InventoryService) RecordMovement(ctx context.Context, recordID uuid.UUID, req RecordMovementRequest, userID uuid.UUID) (*MovementResponse, error) {
	record, err := s.stockRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	movement, err := record.ApplyMovement(inventory.MovementType(req.Type), req.Quantity, req.Reason, req.Reference, userID)
	if err != nil {
		return nil, err
	}

	if err := s.stockRepo.SaveWithLedger(ctx, []*inventory.StockRecord{record}, []*inventory.StockMovement{movement}, nil); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)

	response := ToMovementResponse(movement)
	return &response, nil
}

// RecordAdjustment books a manual ADD or REMOVE correction
func (s *InventoryService) RecordAdjustment(ctx context.Context, recordID uuid.UUID, req RecordAdjustmentRequest, approvedBy uuid.UUID) (*AdjustmentResponse, error) {
	record, err := s.stockRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	adjustment, err := record.ApplyAdjustment(inventory.AdjustmentType(req.Type), req.Quantity, req.Reason, approvedBy)
	if err != nil {
		return nil, err
	}

	if err := s.stockRepo.SaveWithLedger(ctx, []*inventory.StockRecord{record}, nil, []*inventory.StockAdjustment{adjustment}); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)

	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// SetQuantity corrects the absolute on-hand quantity of a record
// Setting the current quantity again is a no-op
func (s *InventoryService) SetQuantity(ctx context.Context, recordID uuid.UUID, req SetQuantityRequest, approvedBy uuid.UUID) (*StockRecordResponse, error) {
	record, err := s.stockRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	adjustment, err := record.SetQuantity(req.Quantity, req.Reason, approvedBy)
	if err != nil {
		return nil, err
	}

	if adjustment != nil {
		if err := s.stockRepo.SaveWithLedger(ctx, []*inventory.StockRecord{record}, nil, []*inventory.StockAdjustment{adjustment}); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, record)
	}

	response := ToStockRecordResponse(record)
	return &response, nil
}

// Transfer moves quantity from one warehouse slot to another as a single
// atomic OUT plus IN pair. The destination record is created on demand
func (s *InventoryService) Transfer(ctx context.Context, recordID uuid.UUID, req TransferRequest, userID uuid.UUID) (*TransferResponse, error) {
	source, err := s.stockRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if _, err := s.warehouseRepo.FindByID(ctx, req.ToWarehouseID); err != nil {
		return nil, err
	}
	if req.ToLocationID != nil {
		location, err := s.locationRepo.FindByID(ctx, *req.ToLocationID)
		if err != nil {
			return nil, err
		}
		if location.WarehouseID != req.ToWarehouseID {
			return nil, shared.NewDomainError("INVALID_LOCATION", "Location does not belong to the warehouse")
		}
	}

	dest, err := s.stockRepo.FindBySlot(ctx, source.ProductID, req.ToWarehouseID, req.ToLocationID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		dest, err = inventory.NewStockRecord(source.ProductID, req.ToWarehouseID, req.ToLocationID)
		if err != nil {
			return nil, err
		}
	}

	if source.SameSlot(dest) {
		return nil, inventory.ErrInvalidTransfer
	}

	// Both legs carry the same reference so the ledger ties them together
	reference := req.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	out, err := source.ApplyMovement(inventory.MovementTypeOut, req.Quantity, transferReason(req.Reason), reference, userID)
	if err != nil {
		return nil, err
	}
	in, err := dest.ApplyMovement(inventory.MovementTypeIn, req.Quantity, transferReason(req.Reason), reference, userID)
	if err != nil {
		return nil, err
	}

	records := []*inventory.StockRecord{source, dest}
	movements := []*inventory.StockMovement{out, in}
	if err := s.stockRepo.SaveWithLedger(ctx, records, movements, nil); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, source, dest)

	return &TransferResponse{
		From: ToStockRecordResponse(source),
		To:   ToStockRecordResponse(dest),
		Out:  ToMovementResponse(out),
		In:   ToMovementResponse(in),
	}, nil
}

// Ledger returns the merged movement and adjustment history of a record
func (s *InventoryService) Ledger(ctx context.Context, recordID uuid.UUID, page, pageSize int) ([]*inventory.LedgerEntry, int64, error) {
	if _, err := s.stockRepo.FindByID(ctx, recordID); err != nil {
		return nil, 0, err
	}

	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	return s.ledgerRepo.FindLedger(ctx, recordID, filter)
}

// ListMovements retrieves movements with filtering and pagination
func (s *InventoryService) ListMovements(ctx context.Context, filter LedgerListFilter) ([]MovementResponse, int64, error) {
	domainFilter := s.ledgerFilter(filter)

	movements, total, err := s.ledgerRepo.FindMovements(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MovementResponse, 0, len(movements))
	for _, movement := range movements {
		responses = append(responses, ToMovementResponse(movement))
	}

	return responses, total, nil
}

// ListAdjustments retrieves adjustments with filtering and pagination
func (s *InventoryService) ListAdjustments(ctx context.Context, filter LedgerListFilter) ([]AdjustmentResponse, int64, error) {
	domainFilter := s.ledgerFilter(filter)

	adjustments, total, err := s.ledgerRepo.FindAdjustments(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AdjustmentResponse, 0, len(adjustments))
	for _, adjustment := range adjustments {
		responses = append(responses, ToAdjustmentResponse(adjustment))
	}

	return responses, total, nil
}

// Delete removes a stock record. The deletion is irreversible; ledger
// entries keep referencing the removed record by id
func (s *InventoryService) Delete(ctx context.Context, recordID uuid.UUID) error {
	if _, err := s.stockRepo.FindByID(ctx, recordID); err != nil {
		return err
	}
	return s.stockRepo.Delete(ctx, recordID)
}

// IncreaseStock books an IN movement for a product slot, creating the
// stock record on demand. Used when purchase orders are received; the
// reference carries the order number
func (s *InventoryService) IncreaseStock(ctx context.Context, productID, warehouseID uuid.UUID, quantity int64, reason, reference string, userID uuid.UUID) error {
	record, err := s.stockRepo.FindBySlot(ctx, productID, warehouseID, nil)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		record, err = inventory.NewStockRecord(productID, warehouseID, nil)
		if err != nil {
			return err
		}
	}

	movement, err := record.ApplyMovement(inventory.MovementTypeIn, quantity, reason, reference, userID)
	if err != nil {
		return err
	}

	if err := s.stockRepo.SaveWithLedger(ctx, []*inventory.StockRecord{record}, []*inventory.StockMovement{movement}, nil); err != nil {
		return err
	}

	s.publishEvents(ctx, record)

	return nil
}

func (s *InventoryService) ledgerFilter(filter LedgerListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["to"] = *filter.To
	}
	return domainFilter
}

func (s *InventoryService) publishEvents(ctx context.Context, aggregates ...*inventory.StockRecord) {
	if s.eventPublisher == nil {
		return
	}

	var events []shared.DomainEvent
	for _, aggregate := range aggregates {
		events = append(events, aggregate.GetDomainEvents()...)
		aggregate.ClearDomainEvents()
	}
	if len(events) == 0 {
		return
	}

	// Event delivery is best effort, the state change already committed
	_ = s.eventPublisher.Publish(ctx, events...)
}

func transferReason(reason string) string {
	if reason == "" {
		return "transfer"
	}
	return reason
}
