package handler

import (
	"github.com/gin-gonic/gin"

	procurementapp "github.com/ims/backend/internal/application/procurement"
	"github.com/ims/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *procurementapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *procurementapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create godoc
// @Summary      Create a purchase order
// @Description  Creates a draft purchase order with an auto-assigned order number
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreateOrderRequest true "Order creation request"
// @Success      201 {object} dto.Response{data=procurementapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req procurementapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// Get godoc
// @Summary      Get a purchase order by ID
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=procurementapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// List godoc
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by order number"
// @Param        status query string false "Filter by status" Enums(draft, open, received, cancelled)
// @Param        supplier_id query string false "Filter by supplier"
// @Success      200 {object} dto.Response{data=[]procurementapp.OrderResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	supplierID, err := queryUUID(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	filter := procurementapp.OrderListFilter{
		Page:       req.Page,
		PageSize:   req.PageSize,
		OrderBy:    req.OrderBy,
		OrderDir:   req.OrderDir,
		Search:     req.Search,
		Status:     c.Query("status"),
		SupplierID: supplierID,
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, pageOrDefault(req.Page), pageSizeOrDefault(req.PageSize))
}

// Update godoc
// @Summary      Update a draft purchase order
// @Description  Replaces the item lines and expected delivery date of a draft order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body procurementapp.UpdateOrderRequest true "Order update request"
// @Success      200 {object} dto.Response{data=procurementapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Submit godoc
// @Summary      Submit a purchase order
// @Description  Moves a draft order with at least one item to the open state
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=procurementapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/submit [post]
func (h *PurchaseOrderHandler) Submit(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Receive godoc
// @Summary      Receive a purchase order
// @Description  Marks an open order as received and books the ordered quantities into stock
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=procurementapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Receive(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel godoc
// @Summary      Cancel a purchase order
// @Description  Cancels a draft or open order with an optional reason
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body procurementapp.CancelOrderRequest false "Cancellation reason"
// @Success      200 {object} dto.Response{data=procurementapp.OrderResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req procurementapp.CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary      Delete a purchase order
// @Description  Only draft and cancelled orders can be deleted
// @Tags         purchase-orders
// @Param        id path string true "Order ID"
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [delete]
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers purchase order endpoints
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
		orders.POST("/:id/submit", h.Submit)
		orders.POST("/:id/receive", h.Receive)
		orders.POST("/:id/cancel", h.Cancel)
	}
}
