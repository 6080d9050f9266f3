package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/identity"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	IP       string `json:"-"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest represents a password change by the user themselves
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// CreateUserRequest represents an admin request to create a user
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
	Role        string `json:"role" binding:"required,oneof=admin manager staff"`
}

// UpdateUserRequest represents an admin request to update a user
type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin manager staff"`
}

// ResetPasswordRequest represents an admin request to reset a user's password
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserListFilter represents filters for listing users
type UserListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	Role     string `form:"role" binding:"omitempty,oneof=admin manager staff"`
	Status   string `form:"status" binding:"omitempty,oneof=active locked deactivated"`
}

// TokenResponse represents issued tokens
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// UserResponse represents user information in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LoginResponse bundles tokens with the authenticated user
type LoginResponse struct {
	Tokens TokenResponse `json:"tokens"`
	User   UserResponse  `json:"user"`
}

// ToUserResponse converts a user aggregate to a response DTO
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
