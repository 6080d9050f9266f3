package identity

import (
	"github.com/ims/backend/internal/domain/shared"
)

const AggregateTypeUser = "User"

const (
	EventTypeUserCreated       = "UserCreated"
	EventTypeUserStatusChanged = "UserStatusChanged"
)

// UserCreatedEvent records a new account. The password hash never leaves the
// aggregate, so the event only carries the public identity fields.
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		Username:        user.Username,
		Role:            user.Role,
	}
}

// UserStatusChangedEvent records an activation or deactivation.
type UserStatusChangedEvent struct {
	shared.BaseDomainEvent
	Username  string     `json:"username"`
	OldStatus UserStatus `json:"old_status"`
	NewStatus UserStatus `json:"new_status"`
}

func NewUserStatusChangedEvent(user *User, oldStatus, newStatus UserStatus) *UserStatusChangedEvent {
	return &UserStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserStatusChanged, AggregateTypeUser, user.ID),
		Username:        user.Username,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
