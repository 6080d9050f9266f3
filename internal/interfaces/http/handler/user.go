package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/ims/backend/internal/application/identity"
)

// UserHandler handles user administration API endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.CreateUserRequest true "User creation request"
// @Success      201 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, user)
}

// Get godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search by username, display name or email"
// @Param        role query string false "Filter by role" Enums(admin, manager, staff)
// @Param        status query string false "Filter by status" Enums(active, locked, deactivated)
// @Success      200 {object} dto.Response{data=[]identityapp.UserResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, users, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Update godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body identityapp.UpdateUserRequest true "Fields to update"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identityapp.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// Activate godoc
// @Summary      Activate a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Security     BearerAuth
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.userService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.userService.Deactivate)
}

// ResetPassword godoc
// @Summary      Reset a user's password
// @Description  Sets a new password without requiring the old one. Admin operation.
// @Tags         users
// @Accept       json
// @Param        id path string true "User ID"
// @Param        request body identityapp.ResetPasswordRequest true "New password"
// @Success      204
// @Security     BearerAuth
// @Router       /users/{id}/password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req identityapp.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Param        id path string true "User ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *UserHandler) changeStatus(c *gin.Context, change func(ctx context.Context, id uuid.UUID) (*identityapp.UserResponse, error)) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := change(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// RegisterRoutes registers user administration endpoints
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
		users.POST("/:id/activate", h.Activate)
		users.POST("/:id/deactivate", h.Deactivate)
		users.PUT("/:id/password", h.ResetPassword)
	}
}
