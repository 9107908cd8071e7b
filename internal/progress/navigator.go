package progress

import (
	"github.com/vovakirdan/arcade-sim/internal/core"
)

// Reason explains a refused transition request.
type Reason int

const (
	ReasonNone         Reason = iota
	ReasonBusy                // Another transition is in flight
	ReasonNeedsKey            // Door needs a small key the actor lacks
	ReasonNeedsBossKey        // Door needs the dungeon's boss key
	ReasonUnknownRoom         // Door target is missing from the graph
)

// String returns the reason code shown to the player.
func (r Reason) String() string {
	switch r {
	case ReasonBusy:
		return "busy"
	case ReasonNeedsKey:
		return "needs_key"
	case ReasonNeedsBossKey:
		return "needs_boss_key"
	case ReasonUnknownRoom:
		return "unknown_room"
	default:
		return "none"
	}
}

// Style is the presentation of a transition.
type Style int

const (
	StyleScroll Style = iota // Same area: rooms swap immediately
	StyleFade                // Entering or leaving a dungeon: rooms swap at the midpoint
)

// Keyring is the key-class resource a locked door checks.
type Keyring interface {
	Keys() int
	SpendKey() bool
	HasBossKey(dungeon string) bool
}

// Transition is an accepted door request.
type Transition struct {
	From  string
	To    string
	Door  Door
	Style Style
}

// Phase reports what a Tick of the navigator did.
type Phase struct {
	Swap bool // The current room changed this tick; tear down and spawn now
	Done bool // The transition finished this tick
	Transition
}

// Navigator runs the Idle → Transitioning → Idle room state machine.
type Navigator struct {
	graph    *Graph
	current  string
	duration float64

	active    *Transition
	remaining core.Countdown
	swapped   bool
}

// NewNavigator starts idle in the given room. duration is the full transition length in ms.
func NewNavigator(g *Graph, start string, duration float64) *Navigator {
	return &Navigator{graph: g, current: start, duration: duration}
}

// Current returns the active room ID.
func (n *Navigator) Current() string {
	return n.current
}

// Room returns the active room.
func (n *Navigator) Room() *Room {
	r, _ := n.graph.Room(n.current)
	return r
}

// Graph returns the underlying room graph.
func (n *Navigator) Graph() *Graph {
	return n.graph
}

// Transitioning reports whether a transition is in flight.
func (n *Navigator) Transitioning() bool {
	return n.active != nil
}

// Active returns the in-flight transition, if any.
func (n *Navigator) Active() (Transition, bool) {
	if n.active == nil {
		return Transition{}, false
	}
	return *n.active, true
}

// Place moves to a room without a transition, for loading a save.
// Ignored while transitioning or for unknown rooms.
func (n *Navigator) Place(room string) bool {
	if n.active != nil {
		return false
	}
	if _, ok := n.graph.Room(room); !ok {
		return false
	}
	n.current = room
	return true
}

// Request asks to go through door. Rejections leave every piece of state,
// keys included, untouched. A small key is spent only when the request is accepted.
func (n *Navigator) Request(d Door, keys Keyring) (Transition, Reason) {
	if n.active != nil {
		return Transition{}, ReasonBusy
	}
	target, ok := n.graph.Room(d.Target)
	if !ok {
		return Transition{}, ReasonUnknownRoom
	}
	from := n.Room()

	switch d.Lock {
	case LockKey:
		if keys == nil || keys.Keys() < 1 {
			return Transition{}, ReasonNeedsKey
		}
	case LockBossKey:
		dungeon := target.Dungeon
		if from != nil && from.Dungeon != "" {
			dungeon = from.Dungeon
		}
		if keys == nil || !keys.HasBossKey(dungeon) {
			return Transition{}, ReasonNeedsBossKey
		}
	}
	if d.Lock == LockKey && !keys.SpendKey() {
		return Transition{}, ReasonNeedsKey
	}

	style := StyleScroll
	if from == nil || (from.Dungeon == "") != (target.Dungeon == "") {
		style = StyleFade
	}
	n.active = &Transition{From: n.current, To: d.Target, Door: d, Style: style}
	n.remaining.Set(n.duration)
	n.swapped = false
	return *n.active, ReasonNone
}

// Tick advances an in-flight transition by dt ms. Scroll transitions swap on
// their first tick, fade transitions at the midpoint; both finish after the
// full duration.
func (n *Navigator) Tick(dt float64) Phase {
	if n.active == nil {
		return Phase{}
	}
	t := *n.active
	n.remaining.Tick(dt)

	var p Phase
	p.Transition = t
	if !n.swapped && (t.Style == StyleScroll || n.remaining.Remaining() <= n.duration/2) {
		n.swapped = true
		n.current = t.To
		p.Swap = true
	}
	if !n.remaining.Active() {
		if !n.swapped {
			n.swapped = true
			n.current = t.To
			p.Swap = true
		}
		n.active = nil
		p.Done = true
	}
	return p
}

// DoorAt finds the door the actor at pos, facing dir, is asking for. A door's
// trigger zone wins; otherwise crossing within margin of the room edge uses the
// first door leading that way.
func (n *Navigator) DoorAt(pos core.Vec2, dir core.Direction, margin float64) (Door, bool) {
	room := n.Room()
	if room == nil || n.active != nil || dir == core.DirNone {
		return Door{}, false
	}
	for _, d := range room.Doors {
		if d.Direction == dir && d.Trigger.Contains(pos) {
			return d, true
		}
	}

	b := room.Bounds
	edge := false
	switch dir {
	case core.DirLeft:
		edge = pos.X < b.X+margin
	case core.DirRight:
		edge = pos.X > b.Right()-margin
	case core.DirUp:
		edge = pos.Y < b.Y+margin
	case core.DirDown:
		edge = pos.Y > b.Bottom()-margin
	}
	if !edge {
		return Door{}, false
	}
	for _, d := range room.Doors {
		if d.Direction == dir {
			return d, true
		}
	}
	return Door{}, false
}
