package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

// HoldMs is how long a held action outlives its last key repeat.
const HoldMs = 250

const noticeMs = 2000

// Hooks lets the caller react to the run without the UI knowing about storage.
type Hooks struct {
	// OnFinish is called once each time a run reaches game over.
	OnFinish func(g registry.Game)
	// OnSave is called on the save key; the returned line is shown as a notice.
	OnSave func(g registry.Game) string
}

// Model is the Bubble Tea model that runs one simulation. The game must
// already be Reset; the model only steps and draws it.
type Model struct {
	game     registry.Game
	config   core.RuntimeConfig
	hooks    Hooks
	keys     KeyMap
	help     help.Model
	latch    *Latch
	canvas   *Canvas
	state    core.GameState
	notice   *notice
	finished bool // OnFinish already ran for the current game over
	quitting bool
}

type notice struct {
	text string
	left int // Ticks until the notice is cleared
}

// NewModel creates a play model for a reset game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, hooks Hooks) Model {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	return Model{
		game:   game,
		config: cfg,
		hooks:  hooks,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		latch:  NewLatch(HoldMs * rate / 1000),
		canvas: NewCanvas(80, 22),
		state:  game.State(),
		notice: &notice{},
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height-2)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if m.hooks.OnSave != nil {
			m.show(m.hooks.OnSave(m.game))
		}
		return m, nil
	}

	actions, held := m.keys.Actions(msg)
	for _, a := range actions {
		if a == core.ActionRestart && !m.state.GameOver {
			continue
		}
		if held {
			m.latch.Press(a)
		} else {
			m.latch.Tap(a)
		}
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res := m.game.Step(m.latch.Frame())
	m.state = res.State

	if m.notice.left > 0 {
		m.notice.left--
	}
	if len(res.Notices) > 0 {
		m.show(res.Notices[len(res.Notices)-1])
	}

	switch {
	case m.state.GameOver && !m.finished:
		m.finished = true
		m.latch.Release()
		if m.hooks.OnFinish != nil {
			m.hooks.OnFinish(m.game)
		}
	case !m.state.GameOver:
		m.finished = false
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) show(text string) {
	if text == "" {
		return
	}
	m.notice.text = text
	m.notice.left = noticeMs * max(m.config.TickRate, 1) / 1000
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.state
}

// View renders the current frame, the latest notice and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Rasterize(m.canvas, m.game.Frame())

	var b strings.Builder
	b.WriteString(RenderCanvas(m.canvas))
	b.WriteString("\n")
	if m.notice.left > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.notice.text))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// Run plays a reset game until the player quits or ctx is cancelled.
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, hooks Hooks) (core.GameState, error) {
	p := tea.NewProgram(
		NewModel(game, cfg, hooks),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		return m.State(), err
	}
	return game.State(), err
}
