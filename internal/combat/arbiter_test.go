package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

func tuning() Tuning {
	return Tuning{
		InvincibleMs:     500,
		Knockback:        200,
		BlockedKnockback: 100,
		BlockArc:         math.Pi / 2,
		KnockbackDamping: 0.9,
		KnockbackEpsilon: 0.5,
	}
}

// advance ticks the actor's countdowns in 100ms steps.
func advance(a *entity.Actor, ms float64) {
	for ms > 0 {
		step := math.Min(100, ms)
		a.Status.Tick(step)
		ms -= step
	}
}

func TestInvincibilityWindowTimeline(t *testing.T) {
	arb := NewArbiter(tuning())
	target := &entity.Actor{ID: 1, Health: 12, MaxHealth: 20, Pos: core.V(100, 100)}
	hit := Hit{Source: 2, From: core.V(80, 100), Amount: 2}

	// t=0
	res, _ := arb.Apply(target, hit)
	require.Equal(t, ResultDamaged, res)
	assert.Equal(t, 10, target.Health)

	// t=200
	advance(target, 200)
	res, events := arb.Apply(target, hit)
	assert.Equal(t, ResultSuppressed, res)
	assert.Empty(t, events)
	assert.Equal(t, 10, target.Health)

	// t=600
	advance(target, 400)
	res, _ = arb.Apply(target, hit)
	assert.Equal(t, ResultDamaged, res)
	assert.Equal(t, 8, target.Health)
}

func TestDeathHappensOnce(t *testing.T) {
	arb := NewArbiter(Tuning{})
	target := &entity.Actor{ID: 7, Tag: "keese", Health: 1}

	res, events := arb.Apply(target, Hit{Amount: 4})
	require.Equal(t, ResultKilled, res)
	assert.True(t, target.Dead)
	assert.Zero(t, target.Health)

	var died int
	for _, e := range events {
		if _, ok := e.(entity.Died); ok {
			died++
		}
	}
	assert.Equal(t, 1, died)

	res, events = arb.Apply(target, Hit{Amount: 4})
	assert.Equal(t, ResultIgnored, res)
	assert.Empty(t, events)
}

func TestBlockInsideArc(t *testing.T) {
	arb := NewArbiter(tuning())
	target := &entity.Actor{ID: 1, Health: 12, Pos: core.V(0, 0), Facing: core.DirRight}
	target.Status.Blocking = true

	res, events := arb.Apply(target, Hit{Source: 3, From: core.V(50, 10), Amount: 2})

	require.Equal(t, ResultBlocked, res)
	assert.Equal(t, 12, target.Health)
	assert.False(t, target.Status.Invincible.Active(), "blocked hits grant no invincibility")
	assert.InDelta(t, 100, target.Knockback.Len(), 1e-9)
	assert.Less(t, target.Knockback.X, 0.0, "pushed away from the source")
	assert.Equal(t, []entity.Event{entity.Blocked{Target: 1, Source: 3}}, events)
}

func TestBlockCoversArcEdge(t *testing.T) {
	arb := NewArbiter(tuning())
	target := &entity.Actor{ID: 1, Health: 12, Pos: core.V(0, 0), Facing: core.DirRight}
	target.Status.Blocking = true

	res, _ := arb.Apply(target, Hit{From: core.V(0, 50), Amount: 2})
	assert.Equal(t, ResultBlocked, res)

	res, _ = arb.Apply(target, Hit{From: core.V(0, -50), Amount: 2})
	assert.Equal(t, ResultBlocked, res)
	assert.Equal(t, 12, target.Health)
}

func TestBlockOutsideArcStillHurts(t *testing.T) {
	arb := NewArbiter(tuning())
	target := &entity.Actor{ID: 1, Health: 12, Pos: core.V(0, 0), Facing: core.DirRight}
	target.Status.Blocking = true

	res, _ := arb.Apply(target, Hit{From: core.V(-50, 0), Amount: 2})

	assert.Equal(t, ResultDamaged, res)
	assert.Equal(t, 10, target.Health)
	assert.InDelta(t, 200, target.Knockback.Len(), 1e-9)
}

func TestUnblockableIgnoresShield(t *testing.T) {
	arb := NewArbiter(tuning())
	target := &entity.Actor{ID: 1, Health: 12, Facing: core.DirRight}
	target.Status.Blocking = true

	res, _ := arb.Apply(target, Hit{From: core.V(10, 0), Amount: 4, Unblockable: true})

	assert.Equal(t, ResultDamaged, res)
	assert.Equal(t, 8, target.Health)
}

func TestHitWithStun(t *testing.T) {
	arb := NewArbiter(tuning())
	target := &entity.Actor{ID: 1, Health: 4}

	_, events := arb.Apply(target, Hit{Amount: 1, StunMs: 500})

	assert.True(t, target.Status.Stunned.Active())
	assert.Contains(t, events, entity.Event(entity.Stunned{Actor: 1, Duration: 500}))
}

func TestStunRespectsInvincibility(t *testing.T) {
	arb := NewArbiter(tuning())
	target := &entity.Actor{ID: 1, Health: 4}
	target.Status.Invincible.Set(1000)

	assert.Empty(t, arb.Stun(target, 2000))
	assert.False(t, target.Status.Stunned.Active())
}

func TestKnockbackDecays(t *testing.T) {
	a := &entity.Actor{Knockback: core.V(300, 0)}

	DecayKnockback(a, 0.9, 0.5)
	assert.InDelta(t, 270, a.Knockback.X, 1e-9, "decay is multiplicative, not a reset")

	for range 200 {
		DecayKnockback(a, 0.9, 0.5)
	}
	assert.Equal(t, core.Vec2{}, a.Knockback)
}
