package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/domain/shared"
	"github.com/ims/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	s.logger.Info("Login attempt", zap.String("username", req.Username))

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", req.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !user.CanLogin() {
		if user.Status == identity.UserStatusLocked {
			s.logger.Warn("Login attempt for locked account", zap.String("username", req.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", req.Username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordFailedLogin()
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if user.Status == identity.UserStatusLocked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", req.Username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("username", req.Username),
			zap.Int("failed_attempts", user.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLogin(req.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// Don't fail the login, just log the error
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", req.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		Tokens: toTokenResponse(tokenPair),
		User:   *ToUserResponse(user),
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate refresh token")
	}
	if blacklisted {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if !user.CanLogin() {
		s.logger.Warn("Token refresh for inactive user", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Username, string(user.Role))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	// The old refresh token is single-use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist rotated refresh token", zap.Error(err))
	}

	resp := toTokenResponse(tokenPair)
	return &resp, nil
}

// Logout revokes the current access and refresh tokens
func (s *AuthService) Logout(ctx context.Context, accessJTI string, accessTTL time.Duration, refreshToken string) error {
	if accessJTI != "" {
		if err := s.blacklist.AddToBlacklist(ctx, accessJTI, accessTTL); err != nil {
			s.logger.Error("Failed to blacklist access token on logout", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}

	if refreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
		if err == nil {
			if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
				s.logger.Error("Failed to blacklist refresh token on logout", zap.Error(err))
			}
		}
	}

	return nil
}

// GetProfile retrieves the current user's information
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return ToUserResponse(user), nil
}

// ChangePassword changes the current user's password
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}

	// Force re-login on all sessions with the old password
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to invalidate existing sessions after password change", zap.Error(err))
	}

	s.logger.Info("User password changed", zap.String("user_id", userID.String()))

	return nil
}

func toTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func mapTokenError(err error) error {
	switch err {
	case auth.ErrExpiredToken:
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case auth.ErrInvalidToken:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case auth.ErrMaxRefreshExceeded:
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
