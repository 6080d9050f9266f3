package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/partner"
)

// CreateSupplierRequest is the input for creating a supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Email         string `json:"email" binding:"required,email"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// UpdateSupplierRequest is the input for updating a supplier
type UpdateSupplierRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	Email         string `json:"email" binding:"required,email"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// SupplierListFilter carries list query parameters
type SupplierListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
}

// SupplierResponse is the outward representation of a supplier
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToSupplierResponse maps a supplier aggregate to its response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Address:       s.Address,
		Status:        string(s.Status),
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
