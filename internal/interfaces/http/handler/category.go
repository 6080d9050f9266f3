package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/ims/backend/internal/application/catalog"
	"github.com/ims/backend/internal/interfaces/http/dto"
)

// CategoryHandler handles category API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateCategoryRequest true "Category creation request"
// @Success      201 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, category)
}

// Get godoc
// @Summary      Get a category by ID
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, category)
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by name"
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page := pageOrDefault(req.Page)
	pageSize := pageSizeOrDefault(req.PageSize)

	categories, total, err := h.categoryService.List(c.Request.Context(), page, pageSize, req.Search)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, categories, total, page, pageSize)
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID"
// @Param        request body catalogapp.UpdateCategoryRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete godoc
// @Summary      Delete a category
// @Description  Fails with a conflict when products still reference the category
// @Tags         categories
// @Param        id path string true "Category ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers category endpoints
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.POST("", h.Create)
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}
