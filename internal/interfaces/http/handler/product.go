package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/ims/backend/internal/application/catalog"
	"github.com/ims/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product creation request"
// @Success      201 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, product)
}

// Get godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// GetBySKU godoc
// @Summary      Get a product by SKU
// @Tags         products
// @Produce      json
// @Param        sku path string true "Product SKU"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/sku/{sku} [get]
func (h *ProductHandler) GetBySKU(c *gin.Context) {
	product, err := h.productService.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by SKU, name or barcode"
// @Param        status query string false "Filter by status" Enums(active, inactive, discontinued)
// @Param        category_id query string false "Filter by category"
// @Param        supplier_id query string false "Filter by supplier"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	categoryID, err := queryUUID(c, "category_id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}
	supplierID, err := queryUUID(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	filter := catalogapp.ProductListFilter{
		Page:       req.Page,
		PageSize:   req.PageSize,
		OrderBy:    req.OrderBy,
		OrderDir:   req.OrderDir,
		Search:     req.Search,
		Status:     c.Query("status"),
		CategoryID: categoryID,
		SupplierID: supplierID,
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, pageOrDefault(req.Page), pageSizeOrDefault(req.PageSize))
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body catalogapp.UpdateProductRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// Activate godoc
// @Summary      Activate a product
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Security     BearerAuth
// @Router       /products/{id}/activate [post]
func (h *ProductHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.productService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate a product
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Security     BearerAuth
// @Router       /products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.productService.Deactivate)
}

// Discontinue godoc
// @Summary      Discontinue a product
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Security     BearerAuth
// @Router       /products/{id}/discontinue [post]
func (h *ProductHandler) Discontinue(c *gin.Context) {
	h.changeStatus(c, h.productService.Discontinue)
}

// Delete godoc
// @Summary      Delete a product
// @Description  Fails with a conflict when stock records or orders still reference the product
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ProductHandler) changeStatus(c *gin.Context, change func(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := change(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, product)
}

// RegisterRoutes registers product endpoints
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.GET("/sku/:sku", h.GetBySKU)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.POST("/:id/activate", h.Activate)
		products.POST("/:id/deactivate", h.Deactivate)
		products.POST("/:id/discontinue", h.Discontinue)
	}
}
