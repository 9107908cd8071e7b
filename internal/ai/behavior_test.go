package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

func radii() Radii {
	return Radii{
		Alert:     8 * 48,
		Disengage: 12 * 48,
		Attack:    1.5 * 48,
		Shoot:     6 * 48,
		Fly:       8 * 48,
		Charge:    6 * 48,
		Awaken:    2 * 48,
		AlignSlop: 24,
	}
}

func timing() Timing {
	return Timing{
		WanderMinMs:  1000,
		WanderMaxMs:  3000,
		JumpMinMs:    800,
		JumpMaxMs:    1500,
		FireCooldown: 2000,
		FlyJitter:    0.3,
		ChargeBoost:  1.5,
	}
}

func TestParseBehaviorFallsBackToPatrol(t *testing.T) {
	assert.Equal(t, BehaviorShoot, ParseBehavior("shoot"))
	assert.Equal(t, BehaviorPatrol, ParseBehavior("teleport"))
	assert.Equal(t, BehaviorPatrol, ParseBehavior(""))
}

func TestPatrolAlertAndDisengageDiffer(t *testing.T) {
	m := NewMind("patrol")
	r, tm := radii(), timing()
	rng := &scripted{ints: []int{4}}

	// Between alert and disengage: not yet alerted, keeps roaming.
	d := m.Decide(Senses{ToPlayer: core.V(10*48, 0), LineOfSight: true}, r, tm, rng, 16)
	assert.False(t, m.Alerted)
	assert.True(t, d.Move.IsZero())

	// Inside alert: chase.
	d = m.Decide(Senses{ToPlayer: core.V(5*48, 0), LineOfSight: true}, r, tm, rng, 16)
	assert.True(t, m.Alerted)
	assert.InDelta(t, 1, d.Move.X, 1e-9)

	// Back between the radii: still chasing.
	d = m.Decide(Senses{ToPlayer: core.V(10*48, 0), LineOfSight: false}, r, tm, rng, 16)
	assert.True(t, m.Alerted)
	assert.InDelta(t, 1, d.Move.X, 1e-9)

	// Beyond disengage: drop the chase.
	m.Decide(Senses{ToPlayer: core.V(13*48, 0)}, r, tm, rng, 16)
	assert.False(t, m.Alerted)
}

func TestShooterRespectsCooldown(t *testing.T) {
	m := NewMind("shoot")
	r, tm := radii(), timing()
	rng := &scripted{}
	near := Senses{ToPlayer: core.V(3*48, 0), LineOfSight: true}

	assert.True(t, m.Decide(near, r, tm, rng, 16).Fire)
	assert.False(t, m.Decide(near, r, tm, rng, 1000).Fire)
	assert.True(t, m.Decide(near, r, tm, rng, 1000).Fire)
}

func TestStunnedEnemyHolds(t *testing.T) {
	m := NewMind("chase")
	m.Alerted = true
	d := m.Decide(Senses{ToPlayer: core.V(100, 0), LineOfSight: true, Stunned: true}, radii(), timing(), &scripted{}, 16)
	assert.Equal(t, Decision{}, d)
}

func TestAwakenStaysDormantUntilClose(t *testing.T) {
	m := NewMind("awaken")
	r, tm := radii(), timing()

	d := m.Decide(Senses{ToPlayer: core.V(3*48, 0), LineOfSight: true}, r, tm, &scripted{}, 16)
	assert.True(t, d.Move.IsZero())
	assert.False(t, m.Awake)

	m.Decide(Senses{ToPlayer: core.V(48, 0)}, r, tm, &scripted{}, 16)
	assert.True(t, m.Awake)

	d = m.Decide(Senses{ToPlayer: core.V(0, 5*48)}, r, tm, &scripted{}, 16)
	assert.InDelta(t, 1, d.Move.Y, 1e-9)
}

func TestChargerRushesAlongAxis(t *testing.T) {
	m := NewMind("charge")
	d := m.Decide(Senses{ToPlayer: core.V(-4*48, 10), LineOfSight: true}, radii(), timing(), &scripted{}, 16)
	assert.Equal(t, core.V(-1.5, 0), d.Move)
}
