package handler

import (
	"github.com/gin-gonic/gin"

	warehouseapp "github.com/ims/backend/internal/application/warehouse"
)

// WarehouseHandler handles warehouse and storage location API endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *warehouseapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *warehouseapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create godoc
// @Summary      Create a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        request body warehouseapp.CreateWarehouseRequest true "Warehouse creation request"
// @Success      201 {object} dto.Response{data=warehouseapp.WarehouseResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	wh, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, wh)
}

// Get godoc
// @Summary      Get a warehouse by ID
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID"
// @Success      200 {object} dto.Response{data=warehouseapp.WarehouseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /warehouses/{id} [get]
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	wh, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, wh)
}

// List godoc
// @Summary      List warehouses
// @Tags         warehouses
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by name or address"
// @Success      200 {object} dto.Response{data=[]warehouseapp.WarehouseResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	var filter warehouseapp.WarehouseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	warehouses, total, err := h.warehouseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, warehouses, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Update godoc
// @Summary      Update a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id path string true "Warehouse ID"
// @Param        request body warehouseapp.UpdateWarehouseRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=warehouseapp.WarehouseResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req warehouseapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	wh, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, wh)
}

// Delete godoc
// @Summary      Delete a warehouse
// @Description  Fails with a conflict when the warehouse still holds stock records
// @Tags         warehouses
// @Param        id path string true "Warehouse ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	if err := h.warehouseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateLocation godoc
// @Summary      Create a storage location in a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id path string true "Warehouse ID"
// @Param        request body warehouseapp.CreateLocationRequest true "Location creation request"
// @Success      201 {object} dto.Response{data=warehouseapp.LocationResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /warehouses/{id}/locations [post]
func (h *WarehouseHandler) CreateLocation(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req warehouseapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	location, err := h.warehouseService.CreateLocation(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, location)
}

// ListLocations godoc
// @Summary      List storage locations of a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID"
// @Success      200 {object} dto.Response{data=[]warehouseapp.LocationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /warehouses/{id}/locations [get]
func (h *WarehouseHandler) ListLocations(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	locations, err := h.warehouseService.ListLocations(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, locations)
}

// DeleteLocation godoc
// @Summary      Delete a storage location
// @Tags         warehouses
// @Param        id path string true "Warehouse ID"
// @Param        location_id path string true "Location ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /warehouses/{id}/locations/{location_id} [delete]
func (h *WarehouseHandler) DeleteLocation(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}
	locationID, err := parseIDParam(c, "location_id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.warehouseService.DeleteLocation(c.Request.Context(), id, locationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers warehouse endpoints
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warehouses := rg.Group("/warehouses")
	{
		warehouses.POST("", h.Create)
		warehouses.GET("", h.List)
		warehouses.GET("/:id", h.Get)
		warehouses.PUT("/:id", h.Update)
		warehouses.DELETE("/:id", h.Delete)
		warehouses.POST("/:id/locations", h.CreateLocation)
		warehouses.GET("/:id/locations", h.ListLocations)
		warehouses.DELETE("/:id/locations/:location_id", h.DeleteLocation)
	}
}
