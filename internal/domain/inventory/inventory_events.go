package inventory

import (
	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockRecord = "StockRecord"

// Event type constants
const (
	EventTypeStockLevelChanged = "StockLevelChanged"
)

// StockLevelChangedEvent is published whenever the on-hand quantity of a
// stock record changes
type StockLevelChangedEvent struct {
	shared.BaseDomainEvent
	StockRecordID uuid.UUID `json:"stock_record_id"`
	ProductID     uuid.UUID `json:"product_id"`
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	OldQuantity   int64     `json:"old_quantity"`
	NewQuantity   int64     `json:"new_quantity"`
	ChangeType    string    `json:"change_type"`
	Reason        string    `json:"reason"`
}

// NewStockLevelChangedEvent creates a new StockLevelChangedEvent
func NewStockLevelChangedEvent(record *StockRecord, oldQuantity int64, changeType, reason string) *StockLevelChangedEvent {
	return &StockLevelChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockLevelChanged, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		WarehouseID:     record.WarehouseID,
		OldQuantity:     oldQuantity,
		NewQuantity:     record.Quantity,
		ChangeType:      changeType,
		Reason:          reason,
	}
}
