package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid fields", func(t *testing.T) {
		product, err := NewProduct("wid-001", "Widget", "pcs")

		require.NoError(t, err)
		assert.Equal(t, "WID-001", product.SKU)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.True(t, product.PurchasePrice.IsZero())
		assert.Equal(t, 1, product.Version)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Widget", "pcs")
		assert.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("WID-001", "  ", "pcs")
		assert.Error(t, err)
	})

	t.Run("fails with empty unit", func(t *testing.T) {
		_, err := NewProduct("WID-001", "Widget", "")
		assert.Error(t, err)
	})
}

func TestProductPrices(t *testing.T) {
	product, err := NewProduct("WID-001", "Widget", "pcs")
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("sets valid prices and bumps version", func(t *testing.T) {
		before := product.Version
		err := product.SetPrices(decimal.NewFromFloat(9.50), decimal.NewFromFloat(14.99))

		require.NoError(t, err)
		assert.True(t, product.PurchasePrice.Equal(decimal.NewFromFloat(9.50)))
		assert.True(t, product.SellingPrice.Equal(decimal.NewFromFloat(14.99)))
		assert.Equal(t, before+1, product.Version)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductPriceChanged, events[0].EventType())
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		err := product.SetPrices(decimal.NewFromInt(-1), decimal.NewFromInt(5))
		assert.Error(t, err)
	})
}

func TestProductLifecycle(t *testing.T) {
	product, err := NewProduct("WID-001", "Widget", "pcs")
	require.NoError(t, err)

	require.NoError(t, product.Deactivate())
	assert.Equal(t, ProductStatusInactive, product.Status)
	assert.False(t, product.IsActive())

	err = product.Deactivate()
	assert.Error(t, err)

	require.NoError(t, product.Activate())
	assert.True(t, product.IsActive())

	require.NoError(t, product.Discontinue())
	assert.Equal(t, ProductStatusDiscontinued, product.Status)

	err = product.Discontinue()
	assert.Error(t, err)
}

func TestProductAssociations(t *testing.T) {
	product, err := NewProduct("WID-001", "Widget", "pcs")
	require.NoError(t, err)

	categoryID := uuid.New()
	supplierID := uuid.New()

	product.SetCategory(&categoryID)
	product.SetSupplier(&supplierID)

	assert.Equal(t, &categoryID, product.CategoryID)
	assert.Equal(t, &supplierID, product.SupplierID)

	require.NoError(t, product.SetMinStock(10))
	assert.EqualValues(t, 10, product.MinStock)

	err = product.SetMinStock(-1)
	assert.Error(t, err)
}

func TestNewCategory(t *testing.T) {
	category, err := NewCategory("Electronics", "Gadgets and devices")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", category.Name)

	_, err = NewCategory("", "")
	assert.Error(t, err)

	require.NoError(t, category.Update("Hardware", ""))
	assert.Equal(t, "Hardware", category.Name)
	assert.Equal(t, 2, category.Version)
}
