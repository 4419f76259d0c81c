package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDeduction(t *testing.T) {
	tests := []struct {
		name        string
		available   int
		demanded    int
		fulfillable int
		shortfall   int
		remaining   int
	}{
		{"enough stock", 5, 2, 2, 0, 3},
		{"exact stock", 2, 2, 2, 0, 0},
		{"partial stock", 3, 5, 3, 2, 0},
		{"no stock", 0, 4, 0, 4, 0},
		{"negative available treated as zero", -2, 1, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDeduction(tt.available, tt.demanded)
			assert.Equal(t, tt.fulfillable, d.Fulfillable)
			assert.Equal(t, tt.shortfall, d.Shortfall)
			assert.Equal(t, tt.remaining, d.Remaining)
			assert.Equal(t, d.Demanded, d.Fulfillable+d.Shortfall)
		})
	}
}

func TestInventoryRecord_Deduct(t *testing.T) {
	record, err := NewInventoryRecord(uuid.New(), uuid.New(), 3, 1)
	require.NoError(t, err)

	d := record.Deduct(5)
	assert.Equal(t, 3, d.Fulfillable)
	assert.Equal(t, 2, d.Shortfall)
	assert.Equal(t, 0, record.Quantity)
	assert.Equal(t, 2, record.Version)
	assert.True(t, record.IsLowStock())
}

func TestInventoryRecord_Adjustments(t *testing.T) {
	_, err := NewInventoryRecord(uuid.New(), uuid.New(), -1, 0)
	require.Error(t, err)

	record, err := NewInventoryRecord(uuid.New(), uuid.New(), 0, 0)
	require.NoError(t, err)
	assert.False(t, record.IsLowStock())

	require.NoError(t, record.Restock(10))
	assert.Equal(t, 10, record.Quantity)
	assert.Error(t, record.Restock(0))

	require.NoError(t, record.SetQuantity(4))
	assert.Equal(t, 4, record.Quantity)
	assert.Error(t, record.SetQuantity(-1))

	require.NoError(t, record.SetLowStockThreshold(4))
	assert.True(t, record.IsLowStock())
}
