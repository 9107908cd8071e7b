package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/arcade-sim/internal/entity"
)

func TestSwingHitsEachTargetOnce(t *testing.T) {
	var s SwingTracker
	assert.False(t, s.Mark(1), "no swing open yet")

	s.Begin()
	assert.True(t, s.Mark(1))
	assert.True(t, s.Mark(2))
	assert.False(t, s.Mark(1))
	assert.False(t, s.Mark(2))

	s.Begin()
	assert.True(t, s.Mark(1), "a new swing clears membership")

	s.End()
	assert.False(t, s.Active())
	assert.False(t, s.Mark(entity.ID(3)))
	assert.Equal(t, uint64(2), s.Swing())
}

func TestChargeDecidesOnRelease(t *testing.T) {
	c := Charge{ThresholdMs: 600}

	// Short tap.
	assert.Equal(t, VariantNone, c.Update(true, 16))
	assert.Equal(t, VariantNone, c.Update(true, 16))
	assert.Equal(t, VariantBase, c.Update(false, 16))

	// Long hold never fires while held.
	assert.Equal(t, VariantNone, c.Update(true, 16))
	for range 60 {
		assert.Equal(t, VariantNone, c.Update(true, 16))
	}
	assert.True(t, c.Charged())
	assert.Equal(t, VariantEnhanced, c.Update(false, 16))

	// Idle input does nothing.
	assert.Equal(t, VariantNone, c.Update(false, 16))
}

func TestChargeHeldExactlyThreshold(t *testing.T) {
	c := Charge{ThresholdMs: 600}
	for range 6 {
		assert.Equal(t, VariantNone, c.Update(true, 100))
	}
	assert.True(t, c.Charged())
	assert.Equal(t, VariantEnhanced, c.Update(false, 100))

	for range 5 {
		c.Update(true, 100)
	}
	assert.False(t, c.Charged())
	assert.Equal(t, VariantBase, c.Update(false, 100))
}

func TestChargeCancel(t *testing.T) {
	c := Charge{ThresholdMs: 100}
	c.Update(true, 16)
	c.Update(true, 200)
	c.Cancel()

	assert.False(t, c.Holding())
	assert.Equal(t, VariantNone, c.Update(false, 16))
}

func TestPoolSpendIsSilentOnShortage(t *testing.T) {
	p := Pool{Current: 3, Max: 10}

	assert.False(t, p.Spend(4))
	assert.Equal(t, 3, p.Current)

	assert.True(t, p.Spend(3))
	assert.Zero(t, p.Current)

	p.Add(50)
	assert.Equal(t, 10, p.Current)

	unbounded := Pool{}
	unbounded.Add(250)
	assert.Equal(t, 250, unbounded.Current)
}
