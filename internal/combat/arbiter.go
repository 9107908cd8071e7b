// Package combat applies damage, knockback and resource rules to actors.
// Nothing here returns an error: every edge case degrades to a no-op result.
package combat

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Tuning configures the arbiter.
type Tuning struct {
	InvincibleMs     float64 // Window after a damaging hit
	Knockback        float64 // Default impulse speed of a damaging hit
	BlockedKnockback float64 // Impulse speed of a blocked hit
	BlockArc         float64 // Half-angle in radians around facing that a shield covers
	KnockbackDamping float64 // Multiplier applied to the impulse every tick
	KnockbackEpsilon float64 // Impulse speed below which it is zeroed
}

// Hit describes one damaging contact.
type Hit struct {
	Source      entity.ID
	From        core.Vec2 // Where the hit came from, for knockback and blocking
	Amount      int
	Knockback   float64 // Impulse override; 0 uses the tuning default
	StunMs      float64 // Optional stun applied with the hit
	Unblockable bool    // Explosions ignore shields
}

// Result is the outcome of applying a hit.
type Result int

const (
	ResultIgnored    Result = iota // Target already dead or missing
	ResultSuppressed               // Target invincible; nothing changed
	ResultBlocked                  // Shield absorbed the damage
	ResultDamaged
	ResultKilled
)

// String returns a human-readable name for the result.
func (r Result) String() string {
	switch r {
	case ResultIgnored:
		return "ignored"
	case ResultSuppressed:
		return "suppressed"
	case ResultBlocked:
		return "blocked"
	case ResultDamaged:
		return "damaged"
	case ResultKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Landed reports whether the hit changed the target's health.
func (r Result) Landed() bool {
	return r == ResultDamaged || r == ResultKilled
}

// Arbiter resolves hits against actors.
type Arbiter struct {
	tuning Tuning
}

// NewArbiter creates an arbiter with the given tuning.
func NewArbiter(t Tuning) *Arbiter {
	return &Arbiter{tuning: t}
}

// Tuning returns the arbiter configuration.
func (a *Arbiter) Tuning() Tuning {
	return a.tuning
}

// Apply resolves a hit on target and returns the result plus the events it produced.
func (a *Arbiter) Apply(target *entity.Actor, h Hit) (Result, []entity.Event) {
	if !target.Alive() {
		return ResultIgnored, nil
	}
	if target.Status.Invincible.Active() {
		return ResultSuppressed, nil
	}

	if !h.Unblockable && target.Status.Blocking && a.covers(target, h.From) {
		target.Knockback = impulse(h.From, target.Pos, a.tuning.BlockedKnockback)
		return ResultBlocked, []entity.Event{entity.Blocked{Target: target.ID, Source: h.Source}}
	}

	amount := h.Amount
	if amount < 0 {
		amount = 0
	}
	target.Health -= amount

	kb := h.Knockback
	if kb == 0 {
		kb = a.tuning.Knockback
	}
	target.Knockback = impulse(h.From, target.Pos, kb)
	target.Status.Invincible.Set(a.tuning.InvincibleMs)

	events := []entity.Event{entity.Damaged{Target: target.ID, Source: h.Source, Amount: amount, Health: target.Health}}
	if h.StunMs > 0 {
		target.Status.Stunned.Set(h.StunMs)
		events = append(events, entity.Stunned{Actor: target.ID, Duration: h.StunMs})
	}

	if target.Health <= 0 {
		target.Health = 0
		target.Dead = true
		events = append(events, entity.Died{Actor: target.ID, Tag: target.Tag, Pos: target.Pos})
		return ResultKilled, events
	}
	return ResultDamaged, events
}

// Stun freezes a target without damage. Invincible and dead targets are unaffected.
func (a *Arbiter) Stun(target *entity.Actor, ms float64) []entity.Event {
	if !target.Alive() || target.Status.Invincible.Active() {
		return nil
	}
	target.Status.Stunned.Set(ms)
	return []entity.Event{entity.Stunned{Actor: target.ID, Duration: ms}}
}

// covers reports whether from lies inside the shield arc around the target's facing.
func (a *Arbiter) covers(target *entity.Actor, from core.Vec2) bool {
	if target.Facing == core.DirNone {
		return false
	}
	to := from.Sub(target.Pos)
	if to.IsZero() {
		return true
	}
	diff := core.WrapAngle(math.Atan2(to.Y, to.X) - target.Facing.Angle())
	return math.Abs(diff) <= a.tuning.BlockArc
}

func impulse(from, to core.Vec2, speed float64) core.Vec2 {
	return to.Sub(from).Normalize().Scale(speed)
}

// DecayKnockback damps an actor's knockback impulse by one tick.
func DecayKnockback(target *entity.Actor, damping, epsilon float64) {
	if target.Knockback.IsZero() {
		return
	}
	target.Knockback = target.Knockback.Scale(damping)
	if target.Knockback.Len() < epsilon {
		target.Knockback = core.Vec2{}
	}
}
