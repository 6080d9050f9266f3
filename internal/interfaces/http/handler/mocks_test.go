package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/domain/warehouse"
	"github.com/ims/backend/internal/interfaces/http/middleware"
)

// setupTestRouter builds a gin engine with a fake authentication middleware
// that injects the given user into the request context
func setupTestRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTUsernameKey, "tester")
		c.Set(middleware.JWTRoleKey, "admin")
		c.Next()
	})
	return router
}

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository implements catalog.CategoryRepository for testing
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Category, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSupplierRepository implements partner.SupplierRepository for testing
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByEmail(ctx context.Context, email string) (*partner.Supplier, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Supplier, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*partner.Supplier), args.Get(1).(int64), args.Error(2)
}

func (m *MockSupplierRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWarehouseRepository implements warehouse.WarehouseRepository for testing
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindByName(ctx context.Context, name string) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*warehouse.Warehouse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*warehouse.Warehouse), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarehouseRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, wh *warehouse.Warehouse) error {
	args := m.Called(ctx, wh)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLocationRepository implements warehouse.LocationRepository for testing
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*warehouse.Location, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) ExistsByName(ctx context.Context, warehouseID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, warehouseID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *warehouse.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockRecordRepository implements inventory.StockRecordRepository for testing
type MockStockRecordRepository struct {
	mock.Mock
}

func (m *MockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindBySlot(ctx context.Context, productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*inventory.StockRecord, error) {
	args := m.Called(ctx, productID, warehouseID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.StockRecord, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.StockRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.StockRecord, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*inventory.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) SaveWithLedger(ctx context.Context, records []*inventory.StockRecord, movements []*inventory.StockMovement, adjustments []*inventory.StockAdjustment) error {
	args := m.Called(ctx, records, movements, adjustments)
	return args.Error(0)
}

func (m *MockStockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockRecordRepository) CountByWarehouse(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerRepository implements inventory.LedgerRepository for testing
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindMovements(ctx context.Context, filter shared.Filter) ([]*inventory.StockMovement, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.StockMovement), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) FindAdjustments(ctx context.Context, filter shared.Filter) ([]*inventory.StockAdjustment, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*inventory.StockAdjustment), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) FindLedger(ctx context.Context, stockRecordID uuid.UUID, filter shared.Filter) ([]*inventory.LedgerEntry, int64, error) {
	args := m.Called(ctx, stockRecordID, filter)
	return args.Get(0).([]*inventory.LedgerEntry), args.Get(1).(int64), args.Error(2)
}

// MockPurchaseOrderRepository implements procurement.PurchaseOrderRepository for testing
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*procurement.PurchaseOrder, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*procurement.PurchaseOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseOrderRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) CountByStatus(ctx context.Context) (map[procurement.PurchaseOrderStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[procurement.PurchaseOrderStatus]int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
