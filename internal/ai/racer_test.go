package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// scripted returns queued values, then repeats the last one.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *scripted) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}

func TestWaypointIndex(t *testing.T) {
	tests := []struct {
		checkpoint, stride, count, want int
	}{
		{0, 3, 24, 1},
		{1, 3, 24, 4},
		{7, 3, 24, 22},
		{8, 3, 24, 1},
		{0, 3, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WaypointIndex(tt.checkpoint, tt.stride, tt.count))
	}
}

func TestSteerTowardSign(t *testing.T) {
	// Rotation 0 faces -Y.
	ahead := SteerToward(core.V(0, 0), 0, core.V(0, -10), 2.5)
	assert.InDelta(t, 0, ahead, 1e-9)

	left := SteerToward(core.V(0, 0), 0, core.V(-10, -10), 2.5)
	assert.Greater(t, left, 0.0, "target to the left steers left")

	right := SteerToward(core.V(0, 0), 0, core.V(10, -10), 2.5)
	assert.Less(t, right, 0.0)

	behind := SteerToward(core.V(0, 0), 0, core.V(1, 10), 2.5)
	assert.InDelta(t, 1, math.Abs(behind), 1e-9, "large errors saturate")
}

func TestPilotHoldsSteerForReactionTime(t *testing.T) {
	wps := []core.Vec2{core.V(0, -100), core.V(-100, -100), core.V(0, 100)}
	p := NewPilot(Profile{SpeedMultiplier: 1, ReactionMs: 250}, wps, 1, 2.5, &scripted{})
	kart := &entity.Actor{Pos: core.V(0, 0)}

	first := p.Decide(kart, 0, 16)
	assert.Greater(t, first, 0.0)

	// Turning past the target would flip the steer, but the pilot has not reacted yet.
	kart.Rotation = math.Pi / 2
	assert.Equal(t, first, p.Decide(kart, 0, 100))
	assert.Equal(t, first, p.Decide(kart, 0, 100))

	assert.NotEqual(t, first, p.Decide(kart, 0, 100))
}

func TestPilotMistakeIsClamped(t *testing.T) {
	wps := []core.Vec2{core.V(0, -100), core.V(-100, -100)}
	rng := &scripted{floats: []float64{0.0, 0.99}}
	p := NewPilot(Profile{ReactionMs: 100, MistakeChance: 0.5}, wps, 1, 2.5, rng)
	kart := &entity.Actor{Rotation: 0}

	steer := p.Decide(kart, 0, 16)
	assert.LessOrEqual(t, steer, 1.0)
	assert.GreaterOrEqual(t, steer, -1.0)
	assert.Greater(t, steer, 0.5, "positive perturbation pushes further left")
}

func TestPilotTarget(t *testing.T) {
	wps := make([]core.Vec2, 24)
	for i := range wps {
		wps[i] = core.V(float64(i), 0)
	}
	p := NewPilot(Profile{}, wps, 3, 2.5, nil)
	assert.Equal(t, core.V(4, 0), p.Target(1))
	assert.Equal(t, core.Vec2{}, NewPilot(Profile{}, nil, 3, 2.5, nil).Target(2))
}
