package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/ims/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"      // Normal active status
	UserStatusLocked      UserStatus = "locked"      // Locked due to failed attempts
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// UserRole represents the access level of a user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// Password cost for bcrypt
const bcryptCost = 12

// Users are locked for this long after too many failed logins
const (
	maxFailedAttempts = 5
	lockDuration      = 15 * time.Minute
)

// User is the aggregate root for authentication and access control
type User struct {
	shared.BaseAggregateRoot
	Username       string
	Email          string
	PasswordHash   string
	DisplayName    string
	Role           UserRole
	Status         UserStatus
	LastLoginAt    *time.Time
	LastLoginIP    string
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUser creates a new user with required fields
func NewUser(username, password string, role UserRole) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		PasswordHash:      passwordHash,
		Role:              role,
		Status:            UserStatusActive,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}

	u.Email = email
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetDisplayName sets the user's display name
func (u *User) SetDisplayName(displayName string) error {
	if displayName != "" && len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}

	u.DisplayName = strings.TrimSpace(displayName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role UserRole) error {
	if err := validateRole(role); err != nil {
		return err
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// CanLogin reports whether the user can authenticate right now
func (u *User) CanLogin() bool {
	if u.Status == UserStatusDeactivated {
		return false
	}
	if u.Status == UserStatusLocked {
		return u.LockedUntil != nil && time.Now().After(*u.LockedUntil)
	}
	return true
}

// RecordLogin records a successful login and resets failure tracking
func (u *User) RecordLogin(ip string) {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastLoginIP = ip
	u.FailedAttempts = 0
	u.LockedUntil = nil
	if u.Status == UserStatusLocked {
		u.Status = UserStatusActive
	}
	u.UpdatedAt = now
	u.IncrementVersion()
}

// RecordFailedLogin records a failed login attempt, locking the account
// once the failure threshold is reached
func (u *User) RecordFailedLogin() {
	u.FailedAttempts++
	if u.FailedAttempts >= maxFailedAttempts {
		until := time.Now().Add(lockDuration)
		u.Status = UserStatusLocked
		u.LockedUntil = &until
	}
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Activate activates the user
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	oldStatus := u.Status
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusActive))

	return nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	oldStatus := u.Status
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, oldStatus, UserStatusDeactivated))

	return nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters of letters, digits, underscore, dot or hyphen")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validateRole(role UserRole) error {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be admin, manager or staff")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
