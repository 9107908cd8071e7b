package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

// MenuKeyMap defines the key bindings for the game picker.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Harder     key.Binding
	Easier     key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Easier, k.Harder, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Easier: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←", "easier"),
		),
		Harder: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→", "harder"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "best times"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	games          []registry.GameInfo
	presets        []config.DifficultyPreset
	cursor         int
	preset         int
	width          int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       bool
	openScoreboard bool
}

// NewMenuModel creates a menu over every registered simulation.
func NewMenuModel(difficulty config.DifficultyPreset, width int) MenuModel {
	m := MenuModel{
		games:   registry.List(),
		presets: config.Presets(),
		preset:  1,
		width:   width,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
	}
	for i, p := range m.presets {
		if p == difficulty {
			m.preset = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.games)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Easier):
			if m.preset > 0 {
				m.preset--
			}
		case key.Matches(msg, m.keys.Harder):
			if m.preset < len(m.presets)-1 {
				m.preset++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.games) > 0 {
				m.selected = true
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Scoreboard):
			m.openScoreboard = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(title.Render(centerText("  A R C A D E   S I M  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a simulation", m.width))
	b.WriteString("\n\n")

	for i, g := range m.games {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+g.Title, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.Difficulty()), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

// Difficulty returns the highlighted preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.presets[m.preset]
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Difficulty      config.DifficultyPreset
	WantsScoreboard bool
	Quit            bool
}

// Result reports what the player chose.
func (m MenuModel) Result() MenuResult {
	r := MenuResult{Difficulty: m.Difficulty()}
	switch {
	case m.openScoreboard:
		r.WantsScoreboard = true
	case m.selected:
		r.GameID = m.games[m.cursor].ID
	default:
		r.Quit = true
	}
	return r
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(difficulty config.DifficultyPreset, width int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(difficulty, width),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return MenuResult{Difficulty: difficulty, Quit: true}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Difficulty: difficulty, Quit: true}, nil
	}
	return m.Result(), nil
}
