// Package ai turns world state into motion intents for computer-controlled actors.
package ai

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Profile is a difficulty tuple for racer opponents.
type Profile struct {
	SpeedMultiplier float64 // Fraction of the base max speed
	ReactionMs      float64 // Minimum time between steering decisions
	MistakeChance   float64 // Probability a decision carries a steering error
}

// WaypointIndex derives the racer target from checkpoint progress:
// (checkpoint*stride + 1) mod count.
func WaypointIndex(checkpoint, stride, count int) int {
	if count <= 0 {
		return 0
	}
	idx := (checkpoint*stride + 1) % count
	if idx < 0 {
		idx += count
	}
	return idx
}

// SteerToward returns the normalized steer ([-1, 1], positive left) that turns a
// kart at pos with the given rotation toward target, using the same heading
// convention as physics.Forward. The turn rate asked for is twice the heading
// error, clamped to turnSpeed.
func SteerToward(pos core.Vec2, rotation float64, target core.Vec2, turnSpeed float64) float64 {
	if turnSpeed <= 0 {
		return 0
	}
	d := target.Sub(pos)
	want := math.Atan2(-d.X, -d.Y)
	diff := core.WrapAngle(want - rotation)
	return core.Sign(diff) * math.Min(math.Abs(diff)*2, turnSpeed) / turnSpeed
}

// Pilot drives one racer opponent around a fixed waypoint loop.
type Pilot struct {
	profile   Profile
	waypoints []core.Vec2
	stride    int
	turnSpeed float64
	rng       core.RNG

	sinceDecision float64
	steer         float64
	decided       bool
}

// NewPilot creates a pilot for the given loop.
func NewPilot(p Profile, waypoints []core.Vec2, stride int, turnSpeed float64, rng core.RNG) *Pilot {
	return &Pilot{profile: p, waypoints: waypoints, stride: stride, turnSpeed: turnSpeed, rng: rng}
}

// Profile returns the pilot's difficulty tuple.
func (p *Pilot) Profile() Profile {
	return p.profile
}

// Target returns the waypoint the pilot aims at for the given checkpoint.
func (p *Pilot) Target(checkpoint int) core.Vec2 {
	if len(p.waypoints) == 0 {
		return core.Vec2{}
	}
	return p.waypoints[WaypointIndex(checkpoint, p.stride, len(p.waypoints))]
}

// Decide returns the steer for this tick. A fresh decision is taken at most
// once per reaction interval; in between the previous steer is held.
func (p *Pilot) Decide(a *entity.Actor, checkpoint int, dt float64) float64 {
	p.sinceDecision += dt
	if p.decided && p.sinceDecision < p.profile.ReactionMs {
		return p.steer
	}
	p.sinceDecision = 0
	p.decided = true

	steer := SteerToward(a.Pos, a.Rotation, p.Target(checkpoint), p.turnSpeed)
	if p.rng != nil && core.Chance(p.rng, p.profile.MistakeChance) {
		steer += core.RangeF(p.rng, -1, 1)
	}
	p.steer = core.ClampF(steer, -1, 1)
	return p.steer
}
