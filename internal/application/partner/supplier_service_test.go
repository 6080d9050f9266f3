package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
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

// MockProductRepository is a partial mock covering what the supplier service needs
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

// MockPurchaseOrderRepository mocks the order repository
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

func newSupplierService() (*SupplierService, *MockSupplierRepository, *MockProductRepository, *MockPurchaseOrderRepository) {
	supplierRepo := new(MockSupplierRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockPurchaseOrderRepository)
	return NewSupplierService(supplierRepo, productRepo, orderRepo), supplierRepo, productRepo, orderRepo
}

func TestSupplierServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates supplier", func(t *testing.T) {
		service, supplierRepo, _, _ := newSupplierService()
		supplierRepo.On("ExistsByEmail", ctx, "sales@acme.example").Return(false, nil)
		supplierRepo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := service.Create(ctx, CreateSupplierRequest{
			Name:          "Acme Corp",
			Email:         "sales@acme.example",
			ContactPerson: "Jo Smith",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", resp.Name)
		assert.Equal(t, "Jo Smith", resp.ContactPerson)
		assert.Equal(t, "active", resp.Status)
		supplierRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service, supplierRepo, _, _ := newSupplierService()
		supplierRepo.On("ExistsByEmail", ctx, "sales@acme.example").Return(true, nil)

		_, err := service.Create(ctx, CreateSupplierRequest{
			Name:  "Acme Corp",
			Email: "sales@acme.example",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		supplierRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSupplierServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes unreferenced supplier", func(t *testing.T) {
		service, supplierRepo, productRepo, orderRepo := newSupplierService()
		supplier, err := partner.NewSupplier("Acme Corp", "sales@acme.example")
		require.NoError(t, err)

		supplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		productRepo.On("CountBySupplier", ctx, supplier.ID).Return(int64(0), nil)
		orderRepo.On("CountBySupplier", ctx, supplier.ID).Return(int64(0), nil)
		supplierRepo.On("Delete", ctx, supplier.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, supplier.ID))
		supplierRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete referenced supplier", func(t *testing.T) {
		service, supplierRepo, productRepo, _ := newSupplierService()
		supplier, err := partner.NewSupplier("Acme Corp", "sales@acme.example")
		require.NoError(t, err)

		supplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		productRepo.On("CountBySupplier", ctx, supplier.ID).Return(int64(3), nil)

		err = service.Delete(ctx, supplier.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		supplierRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing supplier propagates not found", func(t *testing.T) {
		service, supplierRepo, _, _ := newSupplierService()
		id := uuid.New()
		supplierRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSupplierServiceStatus(t *testing.T) {
	ctx := context.Background()

	service, supplierRepo, _, _ := newSupplierService()
	supplier, err := partner.NewSupplier("Acme Corp", "sales@acme.example")
	require.NoError(t, err)

	supplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	supplierRepo.On("Save", ctx, supplier).Return(nil)

	resp, err := service.Deactivate(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	resp, err = service.Activate(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
}
