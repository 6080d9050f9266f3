package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// ErrInvalidTransfer is returned when a transfer names the same source and
// destination slot
var ErrInvalidTransfer = shared.NewDomainError("INVALID_TRANSFER", "Source and destination must differ")

// StockRecord tracks the on-hand quantity of one product in one warehouse slot
// It is the aggregate root of the inventory context; every quantity change
// goes through it and leaves a ledger entry
type StockRecord struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_stock_slot,unique"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;index:idx_stock_slot,unique"`
	LocationID  *uuid.UUID `gorm:"type:uuid;index:idx_stock_slot,unique"`
	Quantity    int64      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates an empty stock record for a product slot
func NewStockRecord(productID, warehouseID uuid.UUID, locationID *uuid.UUID) (*StockRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &StockRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		WarehouseID:       warehouseID,
		LocationID:        locationID,
		Quantity:          0,
	}, nil
}

// SameSlot reports whether two records describe the same product slot
func (r *StockRecord) SameSlot(other *StockRecord) bool {
	if r.ProductID != other.ProductID || r.WarehouseID != other.WarehouseID {
		return false
	}
	if r.LocationID == nil && other.LocationID == nil {
		return true
	}
	if r.LocationID == nil || other.LocationID == nil {
		return false
	}
	return *r.LocationID == *other.LocationID
}

// ApplyMovement records an IN or OUT movement and updates the quantity.
// The optional reference ties the movement to an external document, such as
// an order number or a transfer group. An OUT movement exceeding the on-hand
// quantity fails with shared.ErrInsufficientStock and leaves the record
// untouched
func (r *StockRecord) ApplyMovement(movementType MovementType, quantity int64, reason, reference string, createdBy uuid.UUID) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be IN or OUT")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldQuantity := r.Quantity
	switch movementType {
	case MovementTypeIn:
		r.Quantity += quantity
	case MovementTypeOut:
		if quantity > r.Quantity {
			return nil, shared.ErrInsufficientStock
		}
		r.Quantity -= quantity
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	movement := newStockMovement(r, movementType, quantity, reason, reference, createdBy)
	r.AddDomainEvent(NewStockLevelChangedEvent(r, oldQuantity, string(movementType), reason))

	return movement, nil
}

// ApplyAdjustment records a manual ADD or REMOVE correction
// Unlike movements, adjustments carry the approving user
func (r *StockRecord) ApplyAdjustment(adjustmentType AdjustmentType, quantity int64, reason string, approvedBy uuid.UUID) (*StockAdjustment, error) {
	if !adjustmentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Adjustment type must be ADD or REMOVE")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	oldQuantity := r.Quantity
	switch adjustmentType {
	case AdjustmentTypeAdd:
		r.Quantity += quantity
	case AdjustmentTypeRemove:
		if quantity > r.Quantity {
			return nil, shared.ErrInsufficientStock
		}
		r.Quantity -= quantity
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	adjustment := newStockAdjustment(r, adjustmentType, quantity, reason, approvedBy)
	r.AddDomainEvent(NewStockLevelChangedEvent(r, oldQuantity, string(adjustmentType), reason))

	return adjustment, nil
}

// SetQuantity corrects the on-hand quantity to an absolute target value,
// recording the difference as an adjustment. A target equal to the current
// quantity is a no-op: no adjustment is written and the version stays put
func (r *StockRecord) SetQuantity(target int64, reason string, approvedBy uuid.UUID) (*StockAdjustment, error) {
	if target < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Target quantity cannot be negative")
	}

	delta := target - r.Quantity
	if delta == 0 {
		return nil, nil
	}

	if delta > 0 {
		return r.ApplyAdjustment(AdjustmentTypeAdd, delta, reason, approvedBy)
	}
	return r.ApplyAdjustment(AdjustmentTypeRemove, -delta, reason, approvedBy)
}
