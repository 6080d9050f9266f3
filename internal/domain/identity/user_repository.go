package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// UserRepository persists user aggregates. FindByUsername backs login, so
// implementations index the username column.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
