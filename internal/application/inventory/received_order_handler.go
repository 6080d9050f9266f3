package inventory

import (
	"context"
	"fmt"

	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReceivedOrderHandler increases stock when a purchase order is received
// It subscribes to PurchaseOrderReceived events on the event bus
type ReceivedOrderHandler struct {
	inventoryService *InventoryService
	logger           *zap.Logger
}

// NewReceivedOrderHandler creates a new ReceivedOrderHandler
func NewReceivedOrderHandler(inventoryService *InventoryService, logger *zap.Logger) *ReceivedOrderHandler {
	return &ReceivedOrderHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *ReceivedOrderHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseOrderReceived}
}

// Handle books an IN movement for every item on the received order
func (h *ReceivedOrderHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	received, ok := event.(*procurement.PurchaseOrderReceivedEvent)
	if !ok {
		return nil
	}

	reason := fmt.Sprintf("purchase order %s received", received.OrderNumber)
	for _, item := range received.Items {
		err := h.inventoryService.IncreaseStock(ctx, item.ProductID, received.WarehouseID, item.Quantity, reason, received.OrderNumber, received.ReceivedBy)
		if err != nil {
			h.logger.Error("failed to increase stock for received order",
				zap.String("order_number", received.OrderNumber),
				zap.String("product_id", item.ProductID.String()),
				zap.Int64("quantity", item.Quantity),
				zap.Error(err))
			return err
		}
	}

	h.logger.Info("stock increased for received order",
		zap.String("order_number", received.OrderNumber),
		zap.Int("items", len(received.Items)))

	return nil
}
