package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder("PO-2026-0001", uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return order
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("starts as empty draft", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.Empty(t, order.Items)
		assert.True(t, order.TotalAmount.IsZero())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderCreated, events[0].EventType())
	})

	t.Run("requires order number and supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder("", uuid.New(), uuid.New(), uuid.New())
		assert.Error(t, err)

		_, err = NewPurchaseOrder("PO-1", uuid.Nil, uuid.New(), uuid.New())
		assert.Error(t, err)

		_, err = NewPurchaseOrder("PO-1", uuid.New(), uuid.Nil, uuid.New())
		assert.Error(t, err)
	})
}

func TestPurchaseOrderItems(t *testing.T) {
	t.Run("add items recalculates total", func(t *testing.T) {
		order := newTestOrder(t)

		require.NoError(t, order.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromFloat(2.50)))
		require.NoError(t, order.AddItem(uuid.New(), "Gadget", "GAD-001", 3, decimal.NewFromInt(7)))

		assert.Len(t, order.Items, 2)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(46)))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		order := newTestOrder(t)
		productID := uuid.New()

		require.NoError(t, order.AddItem(productID, "Widget", "WID-001", 10, decimal.NewFromInt(2)))
		err := order.AddItem(productID, "Widget", "WID-001", 5, decimal.NewFromInt(2))
		assert.Error(t, err)
	})

	t.Run("remove item recalculates total", func(t *testing.T) {
		order := newTestOrder(t)
		productID := uuid.New()

		require.NoError(t, order.AddItem(productID, "Widget", "WID-001", 10, decimal.NewFromInt(2)))
		require.NoError(t, order.AddItem(uuid.New(), "Gadget", "GAD-001", 1, decimal.NewFromInt(5)))

		require.NoError(t, order.RemoveItem(productID))
		assert.Len(t, order.Items, 1)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(5)))

		err := order.RemoveItem(productID)
		assert.Error(t, err)
	})

	t.Run("non-draft orders cannot be edited", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromInt(2)))
		require.NoError(t, order.Submit())

		err := order.AddItem(uuid.New(), "Gadget", "GAD-001", 1, decimal.NewFromInt(5))
		assert.Error(t, err)
	})

	t.Run("rejects invalid line items", func(t *testing.T) {
		order := newTestOrder(t)

		err := order.AddItem(uuid.New(), "Widget", "WID-001", 0, decimal.NewFromInt(2))
		assert.Error(t, err)

		err = order.AddItem(uuid.New(), "Widget", "WID-001", 1, decimal.NewFromInt(-2))
		assert.Error(t, err)
	})
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	receiver := uuid.New()

	t.Run("draft to open to received", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromInt(2)))
		order.ClearDomainEvents()

		require.NoError(t, order.Submit())
		assert.Equal(t, PurchaseOrderStatusOpen, order.Status)

		require.NoError(t, order.Receive(receiver))
		assert.Equal(t, PurchaseOrderStatusReceived, order.Status)
		require.NotNil(t, order.ReceivedDate)

		events := order.GetDomainEvents()
		require.Len(t, events, 2)
		received, ok := events[1].(*PurchaseOrderReceivedEvent)
		require.True(t, ok)
		assert.Equal(t, order.WarehouseID, received.WarehouseID)
		assert.Equal(t, receiver, received.ReceivedBy)
		require.Len(t, received.Items, 1)
		assert.EqualValues(t, 10, received.Items[0].Quantity)
	})

	t.Run("empty draft cannot be submitted", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.Submit()
		assert.Error(t, err)
	})

	t.Run("draft cannot be received directly", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromInt(2)))

		err := order.Receive(receiver)
		assert.Error(t, err)
	})

	t.Run("received orders are terminal", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromInt(2)))
		require.NoError(t, order.Submit())
		require.NoError(t, order.Receive(receiver))

		assert.Error(t, order.Cancel("too late"))
		assert.Error(t, order.Receive(receiver))
		assert.Error(t, order.Submit())
	})

	t.Run("cancel from draft and open", func(t *testing.T) {
		draft := newTestOrder(t)
		require.NoError(t, draft.Cancel("changed plans"))
		assert.Equal(t, PurchaseOrderStatusCancelled, draft.Status)
		assert.Equal(t, "changed plans", draft.Notes)

		open := newTestOrder(t)
		require.NoError(t, open.AddItem(uuid.New(), "Widget", "WID-001", 10, decimal.NewFromInt(2)))
		require.NoError(t, open.Submit())
		require.NoError(t, open.Cancel("supplier out of stock"))
		assert.Equal(t, PurchaseOrderStatusCancelled, open.Status)
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{PurchaseOrderStatusDraft, PurchaseOrderStatusOpen, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusDraft, PurchaseOrderStatusReceived, false},
		{PurchaseOrderStatusOpen, PurchaseOrderStatusReceived, true},
		{PurchaseOrderStatusOpen, PurchaseOrderStatusCancelled, true},
		{PurchaseOrderStatusOpen, PurchaseOrderStatusDraft, false},
		{PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled, false},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusOpen, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSetExpectedDeliveryDate(t *testing.T) {
	order := newTestOrder(t)
	date := time.Now().Add(72 * time.Hour)

	require.NoError(t, order.SetExpectedDeliveryDate(&date))
	require.NotNil(t, order.ExpectedDeliveryDate)

	require.NoError(t, order.Cancel(""))
	err := order.SetExpectedDeliveryDate(&date)
	assert.Error(t, err)
}
