package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	procurementapp "github.com/ims/backend/internal/application/procurement"
	"github.com/ims/backend/internal/domain/partner"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/warehouse"
)

type orderHandlerFixture struct {
	orderRepo     *MockPurchaseOrderRepository
	supplierRepo  *MockSupplierRepository
	productRepo   *MockProductRepository
	warehouseRepo *MockWarehouseRepository
	router        *gin.Engine
	userID        uuid.UUID
}

func newOrderHandlerFixture() *orderHandlerFixture {
	f := &orderHandlerFixture{
		orderRepo:     new(MockPurchaseOrderRepository),
		supplierRepo:  new(MockSupplierRepository),
		productRepo:   new(MockProductRepository),
		warehouseRepo: new(MockWarehouseRepository),
		userID:        uuid.New(),
	}
	service := procurementapp.NewPurchaseOrderService(f.orderRepo, f.supplierRepo, f.productRepo, f.warehouseRepo)
	handler := NewPurchaseOrderHandler(service)
	f.router = setupTestRouter(f.userID)
	handler.RegisterRoutes(f.router.Group(""))
	return f
}

func draftOrder(createdBy uuid.UUID) *procurement.PurchaseOrder {
	order, _ := procurement.NewPurchaseOrder("PO-2026-0001", uuid.New(), uuid.New(), createdBy)
	return order
}

func TestPurchaseOrderHandler_Create_Success(t *testing.T) {
	f := newOrderHandlerFixture()

	supplier, _ := partner.NewSupplier("Acme", "orders@acme.test")
	wh, _ := warehouse.NewWarehouse("Main", "", 0)
	product := createTestProduct()

	f.supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	f.warehouseRepo.On("FindByID", mock.Anything, wh.ID).Return(wh, nil)
	f.orderRepo.On("NextOrderNumber", mock.Anything).Return("PO-2026-0042", nil)
	f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseOrder")).Return(nil)

	reqBody := procurementapp.CreateOrderRequest{
		SupplierID:  supplier.ID,
		WarehouseID: wh.ID,
		Items: []procurementapp.OrderItemRequest{
			{ProductID: product.ID, Quantity: 10, UnitCost: decimal.NewFromInt(3)},
		},
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/purchase-orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool                         `json:"success"`
		Data    procurementapp.OrderResponse `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "PO-2026-0042", response.Data.OrderNumber)
	assert.Equal(t, "draft", response.Data.Status)
	assert.True(t, response.Data.TotalAmount.Equal(decimal.NewFromInt(30)))
	f.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Create_InactiveSupplier(t *testing.T) {
	f := newOrderHandlerFixture()

	supplier, _ := partner.NewSupplier("Acme", "orders@acme.test")
	_ = supplier.Deactivate()

	f.supplierRepo.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)

	reqBody := procurementapp.CreateOrderRequest{
		SupplierID:  supplier.ID,
		WarehouseID: uuid.New(),
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/purchase-orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	f.supplierRepo.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Submit_EmptyOrder(t *testing.T) {
	f := newOrderHandlerFixture()

	order := draftOrder(f.userID)
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	req := httptest.NewRequest(http.MethodPost, "/purchase-orders/"+order.ID.String()+"/submit", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, procurement.PurchaseOrderStatusDraft, order.Status)
	f.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Submit_Success(t *testing.T) {
	f := newOrderHandlerFixture()

	order := draftOrder(f.userID)
	_ = order.AddItem(uuid.New(), "Widget", "SKU-001", 5, decimal.NewFromInt(2))
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("Save", mock.Anything, order).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/purchase-orders/"+order.ID.String()+"/submit", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, procurement.PurchaseOrderStatusOpen, order.Status)
	f.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Receive_Success(t *testing.T) {
	f := newOrderHandlerFixture()

	order := draftOrder(f.userID)
	_ = order.AddItem(uuid.New(), "Widget", "SKU-001", 5, decimal.NewFromInt(2))
	_ = order.Submit()
	order.ClearDomainEvents()

	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("Save", mock.Anything, order).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/purchase-orders/"+order.ID.String()+"/receive", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, procurement.PurchaseOrderStatusReceived, order.Status)
	assert.NotNil(t, order.ReceivedDate)
	f.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Receive_DraftRejected(t *testing.T) {
	f := newOrderHandlerFixture()

	order := draftOrder(f.userID)
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	req := httptest.NewRequest(http.MethodPost, "/purchase-orders/"+order.ID.String()+"/receive", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	f.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Cancel_WithReason(t *testing.T) {
	f := newOrderHandlerFixture()

	order := draftOrder(f.userID)
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("Save", mock.Anything, order).Return(nil)

	body, _ := json.Marshal(procurementapp.CancelOrderRequest{Reason: "supplier out of business"})
	req := httptest.NewRequest(http.MethodPost, "/purchase-orders/"+order.ID.String()+"/cancel", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, procurement.PurchaseOrderStatusCancelled, order.Status)
	f.orderRepo.AssertExpectations(t)
}

func TestPurchaseOrderHandler_Delete_OpenRejected(t *testing.T) {
	f := newOrderHandlerFixture()

	order := draftOrder(f.userID)
	_ = order.AddItem(uuid.New(), "Widget", "SKU-001", 5, decimal.NewFromInt(2))
	_ = order.Submit()

	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	req := httptest.NewRequest(http.MethodDelete, "/purchase-orders/"+order.ID.String(), nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	f.orderRepo.AssertExpectations(t)
}
