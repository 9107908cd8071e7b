package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// KeyMap defines the play-screen key bindings. One key drives the matching
// intent of both simulations; each simulation ignores actions it doesn't use.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Attack   key.Binding
	Item     key.Binding
	Interact key.Binding
	Block    key.Binding
	Dash     key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Attack, k.Item, k.Interact, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Attack, k.Item, k.Interact},
		{k.Block, k.Dash},
		{k.Pause, k.Restart, k.Save, k.Quit},
	}
}

// DefaultKeyMap returns the default play bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up / throttle"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down / brake"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left / steer"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right / steer"),
		),
		Attack: key.NewBinding(
			key.WithKeys(" ", "j"),
			key.WithHelp("space", "sword / drift"),
		),
		Item: key.NewBinding(
			key.WithKeys("e", "x"),
			key.WithHelp("e", "use item"),
		),
		Interact: key.NewBinding(
			key.WithKeys("f", "z"),
			key.WithHelp("f", "lift / open"),
		),
		Block: key.NewBinding(
			key.WithKeys("c", "k"),
			key.WithHelp("c", "shield"),
		),
		Dash: key.NewBinding(
			key.WithKeys("v", "l"),
			key.WithHelp("v", "dash"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Actions translates a key to simulation actions. Held actions stay active
// while the key repeats; the others last a single tick.
func (k KeyMap) Actions(msg tea.KeyMsg) (actions []core.Action, held bool) {
	switch {
	case key.Matches(msg, k.Up):
		return []core.Action{core.ActionUp, core.ActionAccelerate}, true
	case key.Matches(msg, k.Down):
		return []core.Action{core.ActionDown, core.ActionBrake}, true
	case key.Matches(msg, k.Left):
		return []core.Action{core.ActionLeft, core.ActionSteerLeft}, true
	case key.Matches(msg, k.Right):
		return []core.Action{core.ActionRight, core.ActionSteerRight}, true
	case key.Matches(msg, k.Attack):
		return []core.Action{core.ActionAttack, core.ActionDrift}, true
	case key.Matches(msg, k.Item):
		return []core.Action{core.ActionUseItem}, true
	case key.Matches(msg, k.Interact):
		return []core.Action{core.ActionInteract}, true
	case key.Matches(msg, k.Block):
		return []core.Action{core.ActionBlock}, true
	case key.Matches(msg, k.Dash):
		return []core.Action{core.ActionDash}, true
	case key.Matches(msg, k.Pause):
		return []core.Action{core.ActionPause}, false
	case key.Matches(msg, k.Restart):
		return []core.Action{core.ActionRestart}, false
	}
	return nil, false
}

// Latch turns key presses into per-tick input frames. Terminals report
// presses and auto-repeats but never releases, so a held action stays active
// for a fixed number of ticks after its last press.
type Latch struct {
	hold int
	left map[core.Action]int
	once []core.Action
}

// NewLatch creates a latch that keeps held actions for holdTicks ticks.
func NewLatch(holdTicks int) *Latch {
	return &Latch{hold: max(holdTicks, 1), left: make(map[core.Action]int)}
}

// Press marks a held action, restarting its hold window.
func (l *Latch) Press(a core.Action) {
	l.left[a] = l.hold
}

// Tap marks an action for the next frame only.
func (l *Latch) Tap(a core.Action) {
	l.once = append(l.once, a)
}

// Release drops every pending action.
func (l *Latch) Release() {
	clear(l.left)
	l.once = l.once[:0]
}

// Frame returns the input for the next tick and ages the held actions.
func (l *Latch) Frame() core.InputFrame {
	f := core.NewInputFrame()
	for a, n := range l.left {
		f.Set(a)
		if n <= 1 {
			delete(l.left, a)
		} else {
			l.left[a] = n - 1
		}
	}
	for _, a := range l.once {
		f.Set(a)
	}
	l.once = l.once[:0]
	return f
}
