package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/ims/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a vendor that purchase orders are placed with
// It is the aggregate root for supplier-related operations
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string         `gorm:"type:varchar(200);not null"`
	ContactPerson string         `gorm:"type:varchar(100)"`
	Email         string         `gorm:"type:varchar(200);uniqueIndex"`
	Phone         string         `gorm:"type:varchar(50);index"`
	Address       string         `gorm:"type:text"`
	Status        SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes         string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name, email string) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}
	if err := validateSupplierEmail(email); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Status:            SupplierStatusActive,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name, contactPerson, phone, address, notes string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}
	if contactPerson != "" && len(contactPerson) > 100 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact person cannot exceed 100 characters")
	}

	s.Name = strings.TrimSpace(name)
	s.ContactPerson = strings.TrimSpace(contactPerson)
	s.Phone = strings.TrimSpace(phone)
	s.Address = address
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierUpdatedEvent(s))

	return nil
}

// SetEmail changes the supplier's contact email
func (s *Supplier) SetEmail(email string) error {
	if err := validateSupplierEmail(email); err != nil {
		return err
	}

	s.Email = strings.ToLower(strings.TrimSpace(email))
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Activate marks the supplier as active
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate marks the supplier as inactive
// Inactive suppliers cannot receive new purchase orders
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierDeactivatedEvent(s))

	return nil
}

// IsActive reports whether the supplier can receive purchase orders
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

var supplierEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateSupplierName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}

func validateSupplierEmail(email string) error {
	if !supplierEmailPattern.MatchString(strings.TrimSpace(email)) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}
