package core

import "strings"

// Action represents a logical intent, abstracted from physical key presses.
// Both simulations read the same snapshot and ignore actions they don't use.
type Action int

const (
	ActionNone       Action = iota
	ActionAccelerate        // Racer: throttle
	ActionBrake             // Racer: brake / reverse
	ActionSteerLeft         // Racer: steer left when no analog steer is given
	ActionSteerRight        // Racer: steer right when no analog steer is given
	ActionDrift             // Racer: hold to drift
	ActionUseItem           // Both: use held or equipped item
	ActionUp                // Adventure: move up
	ActionDown              // Adventure: move down
	ActionLeft              // Adventure: move left
	ActionRight             // Adventure: move right
	ActionAttack            // Adventure: attack button is held this tick
	ActionDash              // Adventure: dash (needs boots)
	ActionBlock             // Adventure: raise shield
	ActionInteract          // Adventure: lift, throw, open, read
	ActionPause             // Platform: pause/unpause
	ActionRestart           // Platform: restart after game over
	ActionQuit              // Platform: exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionAccelerate:
		return "Accelerate"
	case ActionBrake:
		return "Brake"
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionDrift:
		return "Drift"
	case ActionUseItem:
		return "UseItem"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionAttack:
		return "Attack"
	case ActionDash:
		return "Dash"
	case ActionBlock:
		return "Block"
	case ActionInteract:
		return "Interact"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction maps an action name to its Action, ignoring case,
// dashes and underscores. Unknown names report false.
func ParseAction(name string) (Action, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	for a := ActionAccelerate; a <= ActionQuit; a++ {
		if strings.ToLower(a.String()) == key {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame is the input snapshot for a single simulation tick.
// Games receive it by value and never mutate it.
type InputFrame struct {
	// Actions maps action types to whether they are active this tick.
	Actions map[Action]bool

	// Steer is an analog steer value in [-1, 1]; positive turns left.
	// Zero means "derive from ActionSteerLeft/ActionSteerRight".
	Steer float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds an input frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Steer = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Steer = f.Steer
	return clone
}

// SteerValue returns the effective steer in [-1, 1].
func (f InputFrame) SteerValue() float64 {
	if f.Steer != 0 {
		return ClampF(f.Steer, -1, 1)
	}
	var s float64
	if f.Has(ActionSteerLeft) {
		s++
	}
	if f.Has(ActionSteerRight) {
		s--
	}
	return s
}

// Direction returns the directional move intent.
// Vertical input overrides horizontal when both are present.
func (f InputFrame) Direction() Direction {
	switch {
	case f.Has(ActionUp) && !f.Has(ActionDown):
		return DirUp
	case f.Has(ActionDown) && !f.Has(ActionUp):
		return DirDown
	case f.Has(ActionLeft) && !f.Has(ActionRight):
		return DirLeft
	case f.Has(ActionRight) && !f.Has(ActionLeft):
		return DirRight
	default:
		return DirNone
	}
}
