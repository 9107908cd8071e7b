// Package physics integrates actor motion and reports overlaps.
// Integration mutates only the actor passed in; the resolver only reports.
package physics

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// KartParams tunes the racer motion model.
type KartParams struct {
	MaxSpeed         float64 // Units per second
	Acceleration     float64 // Units per second squared
	BrakeForce       float64 // Units per second squared
	TurnSpeed        float64 // Radians per second at full steer
	DriftMultiplier  float64 // Turn rate multiplier while drifting
	Friction         float64 // Multiplicative decay per reference step with no input
	FrictionStepMs   float64 // Step the friction coefficient refers to; 0 applies it once per call
	ReverseFactor    float64 // Reverse cap as a fraction of MaxSpeed
	BoostFactor      float64 // Cap multiplier while boosting
	MinTurnSpeed     float64 // No steering below this absolute speed
	StopEpsilon      float64 // Friction snaps speed to zero below this
	DriftMinSpeed    float64 // Drift engages only above this absolute speed
	DriftChargeRate  float64 // Charge per second while drifting
	DriftChargeMax   float64
	DriftBoostCharge float64 // Charge needed on release to earn a boost
	DriftBoostMs     float64
}

// KartIntent is the per-tick desired motion of a kart.
type KartIntent struct {
	Accelerate bool
	Brake      bool
	Drift      bool
	Steer      float64 // [-1, 1], positive turns left
}

// Forward returns the unit heading vector for a racer rotation.
func Forward(rotation float64) core.Vec2 {
	return core.V(-math.Sin(rotation), -math.Cos(rotation))
}

// IntegrateKart advances a kart by dt milliseconds.
// It returns true when releasing a charged drift started a boost.
func IntegrateKart(a *entity.Actor, in KartIntent, p KartParams, dt float64) bool {
	sec := dt / 1000

	if a.Status.Stunned.Active() {
		a.Speed = 0
		a.Status.Drifting = false
		a.Status.DriftCharge = 0
		a.Vel = core.Vec2{}
		a.Pos = a.Pos.Add(a.Knockback.Scale(sec))
		return false
	}

	driftBoost := false
	wasDrifting := a.Status.Drifting
	a.Status.Drifting = in.Drift && math.Abs(a.Speed) > p.DriftMinSpeed
	switch {
	case a.Status.Drifting:
		a.Status.DriftCharge = math.Min(a.Status.DriftCharge+sec*p.DriftChargeRate, p.DriftChargeMax)
	case wasDrifting:
		if a.Status.DriftCharge > p.DriftBoostCharge {
			if a.Status.Boosting.Remaining() < p.DriftBoostMs {
				a.Status.Boosting.Set(p.DriftBoostMs)
			}
			driftBoost = true
		}
		a.Status.DriftCharge = 0
	}

	top := p.MaxSpeed
	if a.Status.Boosting.Active() {
		top *= p.BoostFactor
	}
	floor := -p.MaxSpeed * p.ReverseFactor

	switch {
	case in.Accelerate:
		a.Speed = math.Min(top, a.Speed+p.Acceleration*sec)
	case in.Brake:
		a.Speed = math.Max(floor, a.Speed-p.BrakeForce*sec)
	default:
		a.Speed *= frictionFactor(p, dt)
		if math.Abs(a.Speed) < p.StopEpsilon {
			a.Speed = 0
		}
	}
	a.Speed = core.ClampF(a.Speed, floor, top)

	if math.Abs(a.Speed) > p.MinTurnSpeed {
		turn := core.ClampF(in.Steer, -1, 1) * p.TurnSpeed
		if a.Status.Drifting {
			turn *= p.DriftMultiplier
		}
		a.Rotation = core.WrapAngle(a.Rotation + turn*core.Sign(a.Speed)*sec)
	}

	a.Vel = Forward(a.Rotation).Scale(a.Speed)
	a.Pos = a.Pos.Add(a.Vel.Add(a.Knockback).Scale(sec))
	return driftBoost
}

func frictionFactor(p KartParams, dt float64) float64 {
	if p.FrictionStepMs <= 0 {
		return p.Friction
	}
	return math.Pow(p.Friction, dt/p.FrictionStepMs)
}

// WalkParams tunes the adventure motion model.
type WalkParams struct {
	Speed          float64 // Units per second
	DashSpeed      float64 // Units per second while dashing
	DashMs         float64 // Dash duration
	DashCooldownMs float64 // Delay after a dash ends before the next one
}

// WalkIntent is the per-tick desired motion of a walking actor.
// Capability gating (boots, shield) happens before the intent is built.
type WalkIntent struct {
	Move  core.Direction
	Dash  bool
	Block bool
}

// IntegrateWalker advances a walking actor by dt milliseconds.
// Dashing and blocking override direct movement while active.
// It returns true when a dash started this tick.
func IntegrateWalker(a *entity.Actor, in WalkIntent, p WalkParams, dt float64) bool {
	sec := dt / 1000
	started := false

	switch {
	case a.Status.Stunned.Active():
		a.Vel = core.Vec2{}
		a.Status.Blocking = false
	case a.Status.Dashing.Active():
		a.Vel = a.Facing.Vector().Scale(p.DashSpeed)
	case in.Dash && !a.Status.DashCooldown.Active():
		a.Status.Dashing.Set(p.DashMs)
		a.Status.DashCooldown.Set(p.DashMs + p.DashCooldownMs)
		a.Status.Blocking = false
		if in.Move != core.DirNone {
			a.Facing = in.Move
		}
		a.Vel = a.Facing.Vector().Scale(p.DashSpeed)
		started = true
	case in.Block:
		a.Status.Blocking = true
		a.Vel = core.Vec2{}
	default:
		a.Status.Blocking = false
		if in.Move != core.DirNone {
			a.Facing = in.Move
			a.Vel = in.Move.Vector().Scale(p.Speed)
		} else {
			a.Vel = core.Vec2{}
		}
	}

	a.Pos = a.Pos.Add(a.Vel.Add(a.Knockback).Scale(sec))
	return started
}

// MoveLinear advances an actor along its velocity without any model.
// Used for projectiles and thrown objects.
func MoveLinear(a *entity.Actor, dt float64) {
	a.Pos = a.Pos.Add(a.Vel.Add(a.Knockback).Scale(dt / 1000))
}
