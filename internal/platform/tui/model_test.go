package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/storage"
)

// stubGame records the frames it is stepped with.
type stubGame struct {
	frames  []core.InputFrame
	state   core.GameState
	notices []string
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *stubGame) State() core.GameState    { return g.state }

func (g *stubGame) Frame() core.Frame {
	return core.Frame{Bounds: core.NewRect(0, 0, 10, 10), HUD: []string{"stub hud"}}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	res := core.StepResult{State: g.state, Notices: g.notices}
	g.notices = nil
	return res
}

func (g *stubGame) last() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func step(m Model) Model {
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func TestHeldKeysLatch(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.RuntimeConfig{TickRate: 20}, Hooks{})
	hold := HoldMs * 20 / 1000

	m = press(m, "up")
	for i := 0; i < hold; i++ {
		m = step(m)
		f := g.last()
		if !f.Has(core.ActionUp) || !f.Has(core.ActionAccelerate) {
			t.Fatalf("tick %d: up should still be held, got %v", i, f.Actions)
		}
	}

	m = step(m)
	if g.last().Has(core.ActionUp) {
		t.Error("up should be released after the hold window")
	}
}

func TestPauseIsOneShot(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.DefaultConfig(), Hooks{})

	m = press(m, "p")
	m = step(m)
	if !g.last().Has(core.ActionPause) {
		t.Fatal("pause should reach the next tick")
	}
	m = step(m)
	if g.last().Has(core.ActionPause) {
		t.Error("pause must not repeat")
	}
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.DefaultConfig(), Hooks{})

	m = press(m, "r")
	m = step(m)
	if g.last().Has(core.ActionRestart) {
		t.Error("restart should be ignored while playing")
	}

	g.state.GameOver = true
	m = step(m)
	m = press(m, "r")
	step(m)
	if !g.last().Has(core.ActionRestart) {
		t.Error("restart should pass through after game over")
	}
}

func TestOnFinishRunsOncePerGameOver(t *testing.T) {
	g := &stubGame{}
	calls := 0
	m := NewModel(g, core.DefaultConfig(), Hooks{
		OnFinish: func(got registry.Game) {
			if got != g {
				t.Errorf("hook got %v", got)
			}
			calls++
		},
	})

	m = step(m)
	g.state.GameOver = true
	m = step(m)
	m = step(m)
	if calls != 1 {
		t.Fatalf("OnFinish calls = %d, expected 1", calls)
	}

	g.state.GameOver = false
	m = step(m)
	g.state.GameOver = true
	step(m)
	if calls != 2 {
		t.Errorf("a new game over should fire again, calls = %d", calls)
	}
}

func TestNoticesAndSaveHook(t *testing.T) {
	g := &stubGame{notices: []string{"Lap 2/3"}}
	m := NewModel(g, core.DefaultConfig(), Hooks{
		OnSave: func(registry.Game) string { return "Saved." },
	})

	m = step(m)
	if !strings.Contains(m.View(), "Lap 2/3") {
		t.Error("view should show the latest notice")
	}

	m = press(m, "ctrl+s")
	if !strings.Contains(m.View(), "Saved.") {
		t.Error("view should show the save notice")
	}
	if !strings.Contains(m.View(), "stub hud") {
		t.Error("view should include the frame HUD")
	}
}

type fakeResults struct {
	asked []string
	rows  []storage.RaceResult
}

func (f *fakeResults) BestTimes(difficulty string, _ int) ([]storage.RaceResult, error) {
	f.asked = append(f.asked, difficulty)
	return f.rows, nil
}

func TestScoreboardCyclesDifficulty(t *testing.T) {
	src := &fakeResults{rows: []storage.RaceResult{{Position: 1, Racers: 4, FinishMs: 83450, Laps: 3}}}
	m := NewScoreboardModel(src, 100, 30)
	if src.asked[0] != "medium" {
		t.Fatalf("first load = %q, expected medium", src.asked[0])
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if got := src.asked[len(src.asked)-1]; got != "hard" {
		t.Errorf("after tab = %q, expected hard", got)
	}
	if !strings.Contains(m.View(), "1:23.45") {
		t.Error("view should list the finish time")
	}
}

func TestClockFormat(t *testing.T) {
	tests := map[float64]string{
		0:      "0:00.00",
		83450:  "1:23.45",
		600000: "10:00.00",
	}
	for ms, want := range tests {
		if got := clock(ms); got != want {
			t.Errorf("clock(%v) = %q, expected %q", ms, got, want)
		}
	}
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel("hard", 80)
	if m.Difficulty() != "hard" {
		t.Fatalf("Difficulty() = %q", m.Difficulty())
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	if m.Difficulty() != "medium" {
		t.Errorf("left should ease to medium, got %q", m.Difficulty())
	}
	if r := m.Result(); !r.Quit {
		t.Errorf("no selection should quit, got %+v", r)
	}
}
