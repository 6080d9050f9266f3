package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/ims/backend/internal/application/partner"
	"github.com/ims/backend/internal/interfaces/http/dto"
)

// SupplierHandler handles supplier API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create godoc
// @Summary      Create a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateSupplierRequest true "Supplier creation request"
// @Success      201 {object} dto.Response{data=partnerapp.SupplierResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, supplier)
}

// Get godoc
// @Summary      Get a supplier by ID
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} dto.Response{data=partnerapp.SupplierResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List godoc
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by name, email or contact person"
// @Param        status query string false "Filter by status" Enums(active, inactive)
// @Success      200 {object} dto.Response{data=[]partnerapp.SupplierResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := partnerapp.SupplierListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Status:   c.Query("status"),
	}

	suppliers, total, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, suppliers, total, pageOrDefault(req.Page), pageSizeOrDefault(req.PageSize))
}

// Update godoc
// @Summary      Update a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        request body partnerapp.UpdateSupplierRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=partnerapp.SupplierResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Activate godoc
// @Summary      Activate a supplier
// @Tags         suppliers
// @Param        id path string true "Supplier ID"
// @Success      200 {object} dto.Response{data=partnerapp.SupplierResponse}
// @Security     BearerAuth
// @Router       /suppliers/{id}/activate [post]
func (h *SupplierHandler) Activate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Deactivate godoc
// @Summary      Deactivate a supplier
// @Tags         suppliers
// @Param        id path string true "Supplier ID"
// @Success      200 {object} dto.Response{data=partnerapp.SupplierResponse}
// @Security     BearerAuth
// @Router       /suppliers/{id}/deactivate [post]
func (h *SupplierHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, supplier)
}

// Delete godoc
// @Summary      Delete a supplier
// @Description  Fails with a conflict when products or orders still reference the supplier
// @Tags         suppliers
// @Param        id path string true "Supplier ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers supplier endpoints
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/:id", h.Get)
		suppliers.PUT("/:id", h.Update)
		suppliers.DELETE("/:id", h.Delete)
		suppliers.POST("/:id/activate", h.Activate)
		suppliers.POST("/:id/deactivate", h.Deactivate)
	}
}
