// Package entity defines the simulated body record shared by both games,
// its status flags and the events components emit while updating it.
// Actors reference each other only by ID; owners resolve IDs fresh each tick.
package entity

import "github.com/vovakirdan/arcade-sim/internal/core"

// ID is a stable actor identifier, unique within one simulation run.
type ID uint32

// None is the zero ID and never refers to a live actor.
const None ID = 0

// IDs hands out monotonically increasing identifiers.
type IDs struct {
	next ID
}

// Next returns a fresh identifier.
func (g *IDs) Next() ID {
	g.next++
	return g.next
}

// Kind classifies an actor for collision filtering and presentation.
type Kind int

const (
	KindPlayer Kind = iota
	KindKart
	KindEnemy
	KindProjectile
	KindObject // Interactable world object, possibly lifted or thrown
	KindPickup // Item drop or item box
	KindHazard // Racer banana and similar static hazards
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindKart:
		return "kart"
	case KindEnemy:
		return "enemy"
	case KindProjectile:
		return "projectile"
	case KindObject:
		return "object"
	case KindPickup:
		return "pickup"
	case KindHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Actor is any simulated body: player, AI opponent, enemy, projectile or object.
type Actor struct {
	ID   ID
	Kind Kind
	Tag  string // Type tag: enemy type, projectile type, kart label

	Pos       core.Vec2
	Vel       core.Vec2 // Velocity from the kinematic model this tick
	Knockback core.Vec2 // Decaying impulse applied on top of Vel
	Rotation  float64   // Heading in radians (racer)
	Facing    core.Direction
	Speed     float64   // Signed scalar speed (racer)
	Size      core.Vec2 // Hitbox width and height

	Health    int
	MaxHealth int
	Dead      bool

	Status Status

	Held     ID     // Carried object, by ID
	HeldItem string // Held racer item or equipped adventure item
}

// Bounds returns the actor's hitbox centered on its position.
func (a *Actor) Bounds() core.Rect {
	return core.RectAround(a.Pos, a.Size.X, a.Size.Y)
}

// Alive reports whether the actor still participates in the simulation.
func (a *Actor) Alive() bool {
	return a != nil && !a.Dead
}

// Status holds the boolean and duration flags of an actor.
// Durations are countdowns advanced by Tick, never wall-clock timers.
type Status struct {
	Invincible   core.Countdown
	Stunned      core.Countdown
	Boosting     core.Countdown
	Dashing      core.Countdown
	DashCooldown core.Countdown
	Blocking     bool
	Drifting     bool
	DriftCharge  float64 // 0..100
}

// Tick advances every countdown by dt milliseconds.
func (s *Status) Tick(dt float64) {
	s.Invincible.Tick(dt)
	s.Stunned.Tick(dt)
	s.Boosting.Tick(dt)
	s.Dashing.Tick(dt)
	s.DashCooldown.Tick(dt)
}

// Labels lists the active flags, for snapshots.
func (s Status) Labels() []string {
	var out []string
	if s.Invincible.Active() {
		out = append(out, "invincible")
	}
	if s.Stunned.Active() {
		out = append(out, "stunned")
	}
	if s.Boosting.Active() {
		out = append(out, "boosting")
	}
	if s.Dashing.Active() {
		out = append(out, "dashing")
	}
	if s.Blocking {
		out = append(out, "blocking")
	}
	if s.Drifting {
		out = append(out, "drifting")
	}
	return out
}
