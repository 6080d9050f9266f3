package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/ims/backend/internal/application/identity"
	"github.com/ims/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication API endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates a user and returns an access and refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=identityapp.LoginResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.IP = c.ClientIP()

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, response)
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchanges a refresh token for a new token pair. The old refresh token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=identityapp.TokenResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, tokens)
}

// LogoutRequest carries the refresh token to revoke alongside the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the current access token and, when provided, the refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Tokens to revoke"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req LogoutRequest
	// The body is optional, a missing refresh token only revokes the access token
	_ = c.ShouldBindJSON(&req)

	err := h.authService.Logout(c.Request.Context(), claims.ID, claims.GetRemainingTTL(), req.RefreshToken)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Profile godoc
// @Summary      Get current user profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword godoc
// @Summary      Change own password
// @Description  Changes the current user's password and invalidates all existing sessions
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identityapp.ChangePasswordRequest true "Old and new password"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers auth endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/profile", h.Profile)
		auth.PUT("/password", h.ChangePassword)
	}
}
