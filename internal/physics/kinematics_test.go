package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

const tick = 1000.0 / 60

func kartParams() KartParams {
	return KartParams{
		MaxSpeed:         50,
		Acceleration:     25,
		BrakeForce:       35,
		TurnSpeed:        2.5,
		DriftMultiplier:  1.8,
		Friction:         0.98,
		ReverseFactor:    0.4,
		BoostFactor:      1.5,
		MinTurnSpeed:     0.5,
		StopEpsilon:      0.1,
		DriftMinSpeed:    10,
		DriftChargeRate:  100,
		DriftChargeMax:   100,
		DriftBoostCharge: 50,
		DriftBoostMs:     500,
	}
}

func TestIntegrateKartAcceleratesToCap(t *testing.T) {
	p := kartParams()
	a := &entity.Actor{}

	for range 600 {
		IntegrateKart(a, KartIntent{Accelerate: true}, p, tick)
	}

	assert.InDelta(t, p.MaxSpeed, a.Speed, 1e-9)
	assert.Less(t, a.Pos.Y, 0.0, "rotation 0 drives toward -Y")
}

func TestIntegrateKartReverseIsCapped(t *testing.T) {
	p := kartParams()
	a := &entity.Actor{}

	for range 600 {
		IntegrateKart(a, KartIntent{Brake: true}, p, tick)
	}

	assert.InDelta(t, -p.MaxSpeed*p.ReverseFactor, a.Speed, 1e-9)
}

func TestIntegrateKartFrictionSnapsToZero(t *testing.T) {
	p := kartParams()
	a := &entity.Actor{Speed: 20}

	IntegrateKart(a, KartIntent{}, p, tick)
	assert.InDelta(t, 20*0.98, a.Speed, 1e-9, "friction decays multiplicatively")

	for range 1000 {
		IntegrateKart(a, KartIntent{}, p, tick)
	}
	assert.Zero(t, a.Speed)
}

func TestIntegrateKartNoTurnBelowMinimumSpeed(t *testing.T) {
	p := kartParams()
	a := &entity.Actor{Speed: 0}

	IntegrateKart(a, KartIntent{Steer: 1}, p, tick)
	assert.Zero(t, a.Rotation)

	a.Speed = 20
	IntegrateKart(a, KartIntent{Steer: 1, Accelerate: true}, p, tick)
	assert.Greater(t, a.Rotation, 0.0)
}

func TestIntegrateKartDriftTurnsFaster(t *testing.T) {
	p := kartParams()
	plain := &entity.Actor{Speed: 30}
	drift := &entity.Actor{Speed: 30}

	IntegrateKart(plain, KartIntent{Steer: 1, Accelerate: true}, p, tick)
	IntegrateKart(drift, KartIntent{Steer: 1, Accelerate: true, Drift: true}, p, tick)

	require.True(t, drift.Status.Drifting)
	assert.InDelta(t, plain.Rotation*p.DriftMultiplier, drift.Rotation, 1e-9)
}

func TestIntegrateKartDriftReleaseBoosts(t *testing.T) {
	p := kartParams()
	a := &entity.Actor{Speed: 30}

	// 0.6s of drifting charges 60 > 50.
	for range 36 {
		IntegrateKart(a, KartIntent{Accelerate: true, Drift: true}, p, tick)
	}
	require.Greater(t, a.Status.DriftCharge, p.DriftBoostCharge)

	boosted := IntegrateKart(a, KartIntent{Accelerate: true}, p, tick)
	assert.True(t, boosted)
	assert.True(t, a.Status.Boosting.Active())
	assert.Zero(t, a.Status.DriftCharge)
}

func TestIntegrateKartShortDriftDoesNotBoost(t *testing.T) {
	p := kartParams()
	a := &entity.Actor{Speed: 30}

	for range 10 {
		IntegrateKart(a, KartIntent{Accelerate: true, Drift: true}, p, tick)
	}
	boosted := IntegrateKart(a, KartIntent{Accelerate: true}, p, tick)

	assert.False(t, boosted)
	assert.False(t, a.Status.Boosting.Active())
}

func TestIntegrateKartStunnedHalts(t *testing.T) {
	p := kartParams()
	a := &entity.Actor{Speed: 40}
	a.Status.Stunned.Set(2000)

	IntegrateKart(a, KartIntent{Accelerate: true, Steer: 1}, p, tick)

	assert.Zero(t, a.Speed)
	assert.Zero(t, a.Rotation)
}

func walkParams() WalkParams {
	return WalkParams{Speed: 180, DashSpeed: 450, DashMs: 400, DashCooldownMs: 500}
}

func TestIntegrateWalkerMovesAndFaces(t *testing.T) {
	a := &entity.Actor{Facing: core.DirDown}

	IntegrateWalker(a, WalkIntent{Move: core.DirRight}, walkParams(), 1000)

	assert.Equal(t, core.DirRight, a.Facing)
	assert.InDelta(t, 180, a.Pos.X, 1e-9)
}

func TestIntegrateWalkerBlockZeroesVelocity(t *testing.T) {
	a := &entity.Actor{Facing: core.DirUp}

	IntegrateWalker(a, WalkIntent{Move: core.DirLeft, Block: true}, walkParams(), tick)

	assert.True(t, a.Status.Blocking)
	assert.Equal(t, core.Vec2{}, a.Vel)
	assert.Equal(t, core.DirUp, a.Facing, "blocking keeps facing")
}

func TestIntegrateWalkerDashOverridesInput(t *testing.T) {
	p := walkParams()
	a := &entity.Actor{Facing: core.DirRight}

	started := IntegrateWalker(a, WalkIntent{Dash: true}, p, tick)
	require.True(t, started)

	// Input is ignored while the dash runs.
	a.Status.Tick(tick)
	IntegrateWalker(a, WalkIntent{Move: core.DirUp}, p, tick)
	assert.Equal(t, core.V(p.DashSpeed, 0), a.Vel)

	// A second dash is refused until the cooldown ends.
	for range 30 {
		a.Status.Tick(tick)
	}
	require.False(t, a.Status.Dashing.Active())
	assert.False(t, IntegrateWalker(a, WalkIntent{Dash: true}, p, tick))
}

func TestIntegrateWalkerKnockbackComposes(t *testing.T) {
	a := &entity.Actor{Knockback: core.V(0, 100)}

	IntegrateWalker(a, WalkIntent{Move: core.DirRight}, walkParams(), 1000)

	assert.InDelta(t, 180, a.Pos.X, 1e-9)
	assert.InDelta(t, 100, a.Pos.Y, 1e-9)
}

func TestForwardIsUnit(t *testing.T) {
	for _, r := range []float64{0, 1, math.Pi, -2} {
		assert.InDelta(t, 1, Forward(r).Len(), 1e-9)
	}
}
