package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarehouse(t *testing.T) {
	t.Run("creates warehouse with valid fields", func(t *testing.T) {
		wh, err := NewWarehouse("Main", "12 Dock Rd", 1000)

		require.NoError(t, err)
		assert.Equal(t, "Main", wh.Name)
		assert.EqualValues(t, 1000, wh.Capacity)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewWarehouse("  ", "", 0)
		assert.Error(t, err)
	})

	t.Run("fails with negative capacity", func(t *testing.T) {
		_, err := NewWarehouse("Main", "", -1)
		assert.Error(t, err)
	})
}

func TestWarehouseUpdate(t *testing.T) {
	wh, err := NewWarehouse("Main", "12 Dock Rd", 1000)
	require.NoError(t, err)

	require.NoError(t, wh.Update("North", "1 Pier Ln", 2000))
	assert.Equal(t, "North", wh.Name)
	assert.EqualValues(t, 2000, wh.Capacity)
	assert.Equal(t, 2, wh.Version)

	err = wh.Update("", "", 0)
	assert.Error(t, err)
}

func TestNewLocation(t *testing.T) {
	wh, err := NewWarehouse("Main", "", 0)
	require.NoError(t, err)

	loc, err := wh.NewLocation("A-01", "First aisle")
	require.NoError(t, err)
	assert.Equal(t, wh.ID, loc.WarehouseID)
	assert.Equal(t, "A-01", loc.Name)

	_, err = wh.NewLocation("", "")
	assert.Error(t, err)
}
