package ai

import (
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// Behavior names an adventure enemy's decision function.
type Behavior string

const (
	BehaviorPatrol   Behavior = "patrol"   // Wander until the player is seen, then chase
	BehaviorChase    Behavior = "chase"    // Always pursue once alerted
	BehaviorShoot    Behavior = "shoot"    // Wander and fire at range
	BehaviorThrow    Behavior = "throw"    // Close in and throw at range
	BehaviorFly      Behavior = "fly"      // Erratic flight toward a nearby player
	BehaviorWander   Behavior = "wander"   // Aimless, turns hostile when close
	BehaviorCharge   Behavior = "charge"   // Rush along an axis when aligned
	BehaviorJump     Behavior = "jump"     // Hop toward the player on a timer
	BehaviorAwaken   Behavior = "awaken"   // Dormant until the player is adjacent
	BehaviorElectric Behavior = "electric" // Slow drift; contact shocks
)

var behaviors = map[Behavior]bool{
	BehaviorPatrol: true, BehaviorChase: true, BehaviorShoot: true, BehaviorThrow: true,
	BehaviorFly: true, BehaviorWander: true, BehaviorCharge: true, BehaviorJump: true,
	BehaviorAwaken: true, BehaviorElectric: true,
}

// ParseBehavior maps a tag to a behavior. Unknown tags fall back to patrol.
func ParseBehavior(tag string) Behavior {
	b := Behavior(tag)
	if behaviors[b] {
		return b
	}
	return BehaviorPatrol
}

// Radii are the distance thresholds behaviors switch on, in world units.
// Alert and Disengage must differ or chase/patrol would thrash.
type Radii struct {
	Alert     float64 // Start chasing inside this distance with line of sight
	Disengage float64 // Give up a chase beyond this distance
	Attack    float64 // Melee reach
	Shoot     float64 // Ranged attackers fire inside this distance
	Fly       float64 // Flyers home in inside this distance
	Charge    float64 // Chargers rush inside this distance when aligned
	Awaken    float64 // Dormant enemies wake inside this distance
	AlignSlop float64 // Axis tolerance for chargers
}

// Timing holds the behavior timers in milliseconds.
type Timing struct {
	WanderMinMs  float64
	WanderMaxMs  float64
	JumpMinMs    float64
	JumpMaxMs    float64
	FireCooldown float64
	FlyJitter    float64 // Random lateral component for flyers
	ChargeBoost  float64 // Speed multiplier while charging
}

// Senses is what an enemy knows about the player this tick.
type Senses struct {
	ToPlayer    core.Vec2 // Vector from enemy to player
	LineOfSight bool
	Stunned     bool
}

// Distance returns the distance to the player.
func (s Senses) Distance() float64 {
	return s.ToPlayer.Len()
}

// Decision is a behavior's output for one tick.
type Decision struct {
	Move core.Vec2 // Unit-ish direction scaled by a speed factor; zero means hold
	Fire bool      // Spawn this enemy's projectile toward the player
	Face core.Vec2 // Direction to face, zero to keep
}

// Mind holds the per-enemy state the behaviors need between ticks.
type Mind struct {
	Behavior Behavior
	Alerted  bool
	Awake    bool

	wander   core.Vec2
	timer    core.Countdown
	fireWait core.Countdown
	charging core.Vec2
}

// NewMind creates a mind for the given tag.
func NewMind(tag string) *Mind {
	return &Mind{Behavior: ParseBehavior(tag)}
}

// Decide runs the enemy's behavior for one tick of dt milliseconds.
func (m *Mind) Decide(s Senses, r Radii, t Timing, rng core.RNG, dt float64) Decision {
	m.timer.Tick(dt)
	m.fireWait.Tick(dt)

	if s.Stunned {
		m.charging = core.Vec2{}
		return Decision{}
	}

	dist := s.Distance()
	toward := s.ToPlayer.Normalize()

	switch m.Behavior {
	case BehaviorChase:
		if s.LineOfSight && dist < r.Alert {
			m.Alerted = true
		}
		return m.pursue(dist, toward, r, t, rng)

	case BehaviorShoot:
		d := m.roam(t, rng)
		if s.LineOfSight && dist < r.Shoot && !m.fireWait.Active() {
			m.fireWait.Set(t.FireCooldown)
			d.Fire = true
			d.Face = toward
		}
		return d

	case BehaviorThrow:
		d := m.pursue(dist, toward, r, t, rng)
		if s.LineOfSight && dist < r.Alert {
			m.Alerted = true
		}
		if dist < r.Shoot {
			d.Move = core.Vec2{}
			if s.LineOfSight && !m.fireWait.Active() {
				m.fireWait.Set(t.FireCooldown)
				d.Fire = true
				d.Face = toward
			}
		}
		return d

	case BehaviorFly:
		if dist >= r.Fly {
			return Decision{}
		}
		jitter := core.V(core.RangeF(rng, -t.FlyJitter, t.FlyJitter), core.RangeF(rng, -t.FlyJitter, t.FlyJitter))
		return Decision{Move: toward.Add(jitter), Face: toward}

	case BehaviorCharge:
		if m.charging.IsZero() && dist < r.Charge && aligned(s.ToPlayer, r.AlignSlop) {
			m.charging = axis(s.ToPlayer)
		}
		if !m.charging.IsZero() {
			if dist >= r.Charge {
				m.charging = core.Vec2{}
			} else {
				return Decision{Move: m.charging.Scale(t.ChargeBoost), Face: m.charging}
			}
		}
		return m.roam(t, rng)

	case BehaviorJump:
		if m.timer.Active() {
			return Decision{}
		}
		m.timer.Set(core.RangeF(rng, t.JumpMinMs, t.JumpMaxMs))
		if s.LineOfSight && dist < r.Alert {
			return Decision{Move: toward.Scale(2), Face: toward}
		}
		return Decision{Move: randomAxis(rng).Scale(2)}

	case BehaviorAwaken:
		if !m.Awake {
			if dist < r.Awaken {
				m.Awake = true
				m.Alerted = true
			}
			return Decision{}
		}
		return Decision{Move: toward, Face: toward}

	case BehaviorElectric, BehaviorWander:
		if m.Behavior == BehaviorWander && s.LineOfSight && dist < r.Attack*2 {
			return Decision{Move: toward, Face: toward}
		}
		return m.roam(t, rng)

	default: // patrol
		if m.Alerted || (s.LineOfSight && dist < r.Alert) {
			m.Alerted = true
			return m.pursue(dist, toward, r, t, rng)
		}
		return m.roam(t, rng)
	}
}

// pursue moves toward the player while alerted and drops the alert past Disengage.
func (m *Mind) pursue(dist float64, toward core.Vec2, r Radii, t Timing, rng core.RNG) Decision {
	if m.Alerted && dist > r.Disengage {
		m.Alerted = false
	}
	if !m.Alerted {
		return m.roam(t, rng)
	}
	if dist < r.Attack {
		return Decision{Face: toward}
	}
	return Decision{Move: toward, Face: toward}
}

// roam walks in a random cardinal direction, re-rolled every WanderMin..WanderMax ms.
func (m *Mind) roam(t Timing, rng core.RNG) Decision {
	if !m.timer.Active() {
		m.timer.Set(core.RangeF(rng, t.WanderMinMs, t.WanderMaxMs))
		m.wander = randomAxis(rng)
	}
	return Decision{Move: m.wander, Face: m.wander}
}

func randomAxis(rng core.RNG) core.Vec2 {
	switch rng.Intn(5) {
	case 0:
		return core.V(0, -1)
	case 1:
		return core.V(0, 1)
	case 2:
		return core.V(-1, 0)
	case 3:
		return core.V(1, 0)
	default:
		return core.Vec2{}
	}
}

func aligned(v core.Vec2, slop float64) bool {
	return math.Abs(v.X) < slop || math.Abs(v.Y) < slop
}

func axis(v core.Vec2) core.Vec2 {
	if math.Abs(v.X) > math.Abs(v.Y) {
		return core.V(core.Sign(v.X), 0)
	}
	return core.V(0, core.Sign(v.Y))
}
