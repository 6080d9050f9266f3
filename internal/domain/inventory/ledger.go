package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	MovementTypeIn  MovementType = "IN"
	MovementTypeOut MovementType = "OUT"
)

// IsValid returns true if the movement type is known
func (t MovementType) IsValid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// AdjustmentType represents the direction of a manual stock correction
type AdjustmentType string

const (
	AdjustmentTypeAdd    AdjustmentType = "ADD"
	AdjustmentTypeRemove AdjustmentType = "REMOVE"
)

// IsValid returns true if the adjustment type is known
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentTypeAdd || t == AdjustmentTypeRemove
}

// StockMovement is an immutable ledger entry for goods moving in or out
type StockMovement struct {
	shared.BaseEntity
	StockRecordID uuid.UUID    `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	WarehouseID   uuid.UUID    `gorm:"type:uuid;not null;index"`
	Type          MovementType `gorm:"type:varchar(10);not null;index"`
	Quantity      int64        `gorm:"not null"`
	Reason        string       `gorm:"type:varchar(200)"`
	Reference     string       `gorm:"type:varchar(100)"`
	CreatedBy     uuid.UUID    `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

func newStockMovement(record *StockRecord, movementType MovementType, quantity int64, reason, reference string, createdBy uuid.UUID) *StockMovement {
	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		StockRecordID: record.ID,
		ProductID:     record.ProductID,
		WarehouseID:   record.WarehouseID,
		Type:          movementType,
		Quantity:      quantity,
		Reason:        reason,
		Reference:     reference,
		CreatedBy:     createdBy,
	}
}

// StockAdjustment is an immutable ledger entry for manual corrections
type StockAdjustment struct {
	shared.BaseEntity
	StockRecordID uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	WarehouseID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type          AdjustmentType `gorm:"type:varchar(10);not null;index"`
	Quantity      int64          `gorm:"not null"`
	Reason        string         `gorm:"type:varchar(200)"`
	ApprovedBy    uuid.UUID      `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

func newStockAdjustment(record *StockRecord, adjustmentType AdjustmentType, quantity int64, reason string, approvedBy uuid.UUID) *StockAdjustment {
	return &StockAdjustment{
		BaseEntity:    shared.NewBaseEntity(),
		StockRecordID: record.ID,
		ProductID:     record.ProductID,
		WarehouseID:   record.WarehouseID,
		Type:          adjustmentType,
		Quantity:      quantity,
		Reason:        reason,
		ApprovedBy:    approvedBy,
	}
}

// LedgerEntryKind distinguishes ledger entry sources
type LedgerEntryKind string

const (
	LedgerEntryMovement   LedgerEntryKind = "movement"
	LedgerEntryAdjustment LedgerEntryKind = "adjustment"
)

// LedgerEntry is the merged history view over movements and adjustments,
// ordered by occurrence time descending
type LedgerEntry struct {
	ID            uuid.UUID       `json:"id"`
	Kind          LedgerEntryKind `json:"kind"`
	StockRecordID uuid.UUID       `json:"stock_record_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	Type          string          `json:"type"`
	Quantity      int64           `json:"quantity"`
	Reason        string          `json:"reason"`
	Reference     string          `json:"reference,omitempty"`
	ActorID       uuid.UUID       `json:"actor_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
