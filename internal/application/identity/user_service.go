package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles administrative user management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		if err := user.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return ToUserResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Role != "" {
		f.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}

	users, total, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = *ToUserResponse(user)
	}
	return responses, total, nil
}

// Update updates a user's profile fields and role
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.UserRole(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// Activate reactivates a deactivated or locked user
func (s *UserService) Activate(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, userID, (*identity.User).Activate)
}

// Deactivate deactivates a user, preventing login
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	return s.changeStatus(ctx, userID, (*identity.User).Deactivate)
}

// ResetPassword sets a new password for a user without the old one
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User password reset", zap.String("user_id", userID.String()))

	return nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *UserService) changeStatus(ctx context.Context, userID uuid.UUID, change func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := change(user); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}
