package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
)

// WarehouseService handles warehouse and location management
type WarehouseService struct {
	warehouseRepo warehouse.WarehouseRepository
	locationRepo  warehouse.LocationRepository
	stockRepo     inventory.StockRecordRepository
}

// NewWarehouseService creates a new warehouse service
func NewWarehouseService(
	warehouseRepo warehouse.WarehouseRepository,
	locationRepo warehouse.LocationRepository,
	stockRepo inventory.StockRecordRepository,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		stockRepo:     stockRepo,
	}
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouseRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse name is already taken")
	}

	wh, err := warehouse.NewWarehouse(req.Name, req.Address, req.Capacity)
	if err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, wh); err != nil {
		return nil, err
	}

	return ToWarehouseResponse(wh), nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	wh, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return ToWarehouseResponse(wh), nil
}

// List retrieves warehouses with pagination
func (s *WarehouseService) List(ctx context.Context, filter WarehouseListFilter) ([]WarehouseResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search

	warehouses, total, err := s.warehouseRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WarehouseResponse, len(warehouses))
	for i, wh := range warehouses {
		responses[i] = *ToWarehouseResponse(wh)
	}
	return responses, total, nil
}

// Update updates a warehouse
func (s *WarehouseService) Update(ctx context.Context, warehouseID uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	wh, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if req.Name != wh.Name {
		exists, err := s.warehouseRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse name is already taken")
		}
	}

	if err := wh.Update(req.Name, req.Address, req.Capacity); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, wh); err != nil {
		return nil, err
	}

	return ToWarehouseResponse(wh), nil
}

// Delete removes a warehouse.
// A warehouse holding stock records cannot be deleted.
func (s *WarehouseService) Delete(ctx context.Context, warehouseID uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return err
	}

	count, err := s.stockRepo.CountByWarehouse(ctx, warehouseID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CONFLICT", "Warehouse still holds stock records")
	}

	locations, err := s.locationRepo.FindByWarehouse(ctx, warehouseID)
	if err != nil {
		return err
	}
	for _, loc := range locations {
		if err := s.locationRepo.Delete(ctx, loc.ID); err != nil {
			return err
		}
	}

	return s.warehouseRepo.Delete(ctx, warehouseID)
}

// CreateLocation creates a named location inside a warehouse
func (s *WarehouseService) CreateLocation(ctx context.Context, warehouseID uuid.UUID, req CreateLocationRequest) (*LocationResponse, error) {
	wh, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.locationRepo.ExistsByName(ctx, warehouseID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Location name is already taken in this warehouse")
	}

	loc, err := wh.NewLocation(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, loc); err != nil {
		return nil, err
	}

	return ToLocationResponse(loc), nil
}

// ListLocations retrieves all locations of a warehouse
func (s *WarehouseService) ListLocations(ctx context.Context, warehouseID uuid.UUID) ([]LocationResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.FindByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationResponse, len(locations))
	for i, loc := range locations {
		responses[i] = *ToLocationResponse(loc)
	}
	return responses, nil
}

// DeleteLocation removes a location from a warehouse
func (s *WarehouseService) DeleteLocation(ctx context.Context, warehouseID, locationID uuid.UUID) error {
	loc, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}
	if loc.WarehouseID != warehouseID {
		return shared.ErrNotFound
	}
	return s.locationRepo.Delete(ctx, locationID)
}
