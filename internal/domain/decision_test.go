package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampBid_WithinBounds(t *testing.T) {
	// +10% queda dentro de [0.7, 1.3] × current
	assert.InDelta(t, 1.10, ClampBid(1.00, 1.10), 0.0001)
	assert.InDelta(t, 0.90, ClampBid(1.00, 0.90), 0.0001)
}

func TestClampBid_ClampsHigh(t *testing.T) {
	assert.InDelta(t, 1.30, ClampBid(1.00, 2.50), 0.0001)
}

func TestClampBid_ClampsLow(t *testing.T) {
	assert.InDelta(t, 0.70, ClampBid(1.00, 0.10), 0.0001)
}

func TestClampBid_Law(t *testing.T) {
	// Para toda puja actual > 0 y todo cambio crudo:
	// 0.7×current ≤ clamped ≤ 1.3×current
	currents := []float64{0.01, 0.5, 1.0, 2.37, 100}
	raws := []float64{-5, 0, 0.001, 0.69, 0.71, 1.0, 1.29, 1.31, 9999}

	for _, current := range currents {
		for _, raw := range raws {
			got := ClampBid(current, raw*current)
			assert.GreaterOrEqual(t, got, current*BidClampMin-1e-9,
				fmt.Sprintf("current=%v raw=%v", current, raw))
			assert.LessOrEqual(t, got, current*BidClampMax+1e-9,
				fmt.Sprintf("current=%v raw=%v", current, raw))
		}
	}
}

func TestClampBid_NoReferenceBid(t *testing.T) {
	// Sin puja actual válida no hay rango que aplicar
	assert.Equal(t, 0.42, ClampBid(0, 0.42))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "skip", ActionSkip.String())
	assert.Equal(t, "pause-or-lower", ActionPauseOrLower.String())
	assert.Equal(t, "increase", ActionIncrease.String())
	assert.Equal(t, "decrease", ActionDecrease.String())
	assert.Equal(t, "review", ActionReview.String())
	assert.Equal(t, "no-change", ActionNoChange.String())
}

func TestAction_AdjustsBid(t *testing.T) {
	assert.True(t, ActionIncrease.AdjustsBid())
	assert.True(t, ActionDecrease.AdjustsBid())
	assert.True(t, ActionPauseOrLower.AdjustsBid())
	assert.False(t, ActionSkip.AdjustsBid())
	assert.False(t, ActionReview.AdjustsBid())
	assert.False(t, ActionNoChange.AdjustsBid())
}
