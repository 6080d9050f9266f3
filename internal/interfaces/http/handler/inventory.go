package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/ims/backend/internal/application/inventory"
	"github.com/ims/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles stock record and ledger API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateStockRecord godoc
// @Summary      Create a stock record
// @Description  Creates a stock record for a product slot, optionally booking an initial quantity
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateStockRecordRequest true "Stock record creation request"
// @Success      201 {object} dto.Response{data=inventoryapp.StockRecordResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock [post]
func (h *InventoryHandler) CreateStockRecord(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.CreateStockRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	record, err := h.inventoryService.CreateStockRecord(c.Request.Context(), req, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, record)
}

// GetStockRecord godoc
// @Summary      Get a stock record by ID
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Stock record ID"
// @Success      200 {object} dto.Response{data=inventoryapp.StockRecordResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/{id} [get]
func (h *InventoryHandler) GetStockRecord(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock record ID")
		return
	}

	record, err := h.inventoryService.GetStockRecord(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// ListStock godoc
// @Summary      List stock records
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        product_id query string false "Filter by product"
// @Param        warehouse_id query string false "Filter by warehouse"
// @Param        location_id query string false "Filter by location"
// @Param        search query string false "Free-text search over product, warehouse, location and quantity"
// @Success      200 {object} dto.Response{data=[]inventoryapp.StockRecordResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /stock [get]
func (h *InventoryHandler) ListStock(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	productID, err := queryUUID(c, "product_id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	warehouseID, err := queryUUID(c, "warehouse_id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	locationID, err := queryUUID(c, "location_id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	filter := inventoryapp.StockListFilter{
		Page:        req.Page,
		PageSize:    req.PageSize,
		OrderBy:     req.OrderBy,
		OrderDir:    req.OrderDir,
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		Search:      req.Search,
	}

	records, total, err := h.inventoryService.ListStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, records, total, pageOrDefault(req.Page), pageSizeOrDefault(req.PageSize))
}

// RecordMovement godoc
// @Summary      Record a stock movement
// @Description  Books an IN or OUT movement against a stock record
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock record ID"
// @Param        request body inventoryapp.RecordMovementRequest true "Movement request"
// @Success      201 {object} dto.Response{data=inventoryapp.MovementResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/{id}/movements [post]
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock record ID")
		return
	}

	var req inventoryapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	movement, err := h.inventoryService.RecordMovement(c.Request.Context(), id, req, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, movement)
}

// RecordAdjustment godoc
// @Summary      Record a stock adjustment
// @Description  Books a manual ADD or REMOVE correction against a stock record
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock record ID"
// @Param        request body inventoryapp.RecordAdjustmentRequest true "Adjustment request"
// @Success      201 {object} dto.Response{data=inventoryapp.AdjustmentResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/{id}/adjustments [post]
func (h *InventoryHandler) RecordAdjustment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock record ID")
		return
	}

	var req inventoryapp.RecordAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	adjustment, err := h.inventoryService.RecordAdjustment(c.Request.Context(), id, req, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, adjustment)
}

// SetQuantity godoc
// @Summary      Set the absolute on-hand quantity
// @Description  Books the difference to the current quantity as an adjustment
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Stock record ID"
// @Param        request body inventoryapp.SetQuantityRequest true "Target quantity"
// @Success      200 {object} dto.Response{data=inventoryapp.StockRecordResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/{id}/quantity [put]
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock record ID")
		return
	}

	var req inventoryapp.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	record, err := h.inventoryService.SetQuantity(c.Request.Context(), id, req, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, record)
}

// Transfer godoc
// @Summary      Transfer stock between warehouse slots
// @Description  Books an OUT movement at the source and an IN movement at the destination atomically
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Source stock record ID"
// @Param        request body inventoryapp.TransferRequest true "Transfer request"
// @Success      200 {object} dto.Response{data=inventoryapp.TransferResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/{id}/transfer [post]
func (h *InventoryHandler) Transfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock record ID")
		return
	}

	var req inventoryapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	transfer, err := h.inventoryService.Transfer(c.Request.Context(), id, req, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, transfer)
}

// Ledger godoc
// @Summary      Get the movement history of a stock record
// @Description  Returns merged movements and adjustments, newest first
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Stock record ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]inventory.LedgerEntry,meta=dto.Meta}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/{id}/ledger [get]
func (h *InventoryHandler) Ledger(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock record ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	page := pageOrDefault(req.Page)
	pageSize := pageSizeOrDefault(req.PageSize)

	entries, total, err := h.inventoryService.Ledger(c.Request.Context(), id, page, pageSize)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, page, pageSize)
}

// ListMovements godoc
// @Summary      List stock movements
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        product_id query string false "Filter by product"
// @Param        warehouse_id query string false "Filter by warehouse"
// @Param        type query string false "Filter by movement type" Enums(IN, OUT)
// @Success      200 {object} dto.Response{data=[]inventoryapp.MovementResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /stock/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	filter, err := h.ledgerFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	movements, total, err := h.inventoryService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, movements, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// ListAdjustments godoc
// @Summary      List stock adjustments
// @Tags         inventory
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        product_id query string false "Filter by product"
// @Param        warehouse_id query string false "Filter by warehouse"
// @Param        type query string false "Filter by adjustment type" Enums(ADD, REMOVE)
// @Success      200 {object} dto.Response{data=[]inventoryapp.AdjustmentResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /stock/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	filter, err := h.ledgerFilter(c)
	if err != nil {
		h.BindingError(c, err)
		return
	}

	adjustments, total, err := h.inventoryService.ListAdjustments(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, adjustments, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Delete godoc
// @Summary      Delete a stock record
// @Description  Irreversibly removes a stock record. Ledger history is kept
// @Tags         inventory
// @Param        id path string true "Stock record ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stock/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid stock record ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *InventoryHandler) ledgerFilter(c *gin.Context) (inventoryapp.LedgerListFilter, error) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return inventoryapp.LedgerListFilter{}, err
	}

	productID, err := queryUUID(c, "product_id")
	if err != nil {
		return inventoryapp.LedgerListFilter{}, err
	}
	warehouseID, err := queryUUID(c, "warehouse_id")
	if err != nil {
		return inventoryapp.LedgerListFilter{}, err
	}

	filter := inventoryapp.LedgerListFilter{
		Page:        req.Page,
		PageSize:    req.PageSize,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Type:        c.Query("type"),
	}
	if from, err := queryDate(c, "from"); err != nil {
		return inventoryapp.LedgerListFilter{}, err
	} else if !from.IsZero() {
		filter.From = &from
	}
	if to, err := queryDate(c, "to"); err != nil {
		return inventoryapp.LedgerListFilter{}, err
	} else if !to.IsZero() {
		filter.To = &to
	}
	return filter, nil
}

// RegisterRoutes registers inventory endpoints
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("", h.CreateStockRecord)
		stock.GET("", h.ListStock)
		stock.GET("/movements", h.ListMovements)
		stock.GET("/adjustments", h.ListAdjustments)
		stock.GET("/:id", h.GetStockRecord)
		stock.DELETE("/:id", h.Delete)
		stock.POST("/:id/movements", h.RecordMovement)
		stock.POST("/:id/adjustments", h.RecordAdjustment)
		stock.PUT("/:id/quantity", h.SetQuantity)
		stock.POST("/:id/transfer", h.Transfer)
		stock.GET("/:id/ledger", h.Ledger)
	}
}
