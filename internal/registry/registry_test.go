package registry

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

type fakeGame struct {
	logger   *log.Logger
	observer entity.Observer
}

func (f *fakeGame) ID() string                           { return "fake" }
func (f *fakeGame) Title() string                        { return "Fake" }
func (f *fakeGame) Reset(core.RuntimeConfig)             {}
func (f *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (f *fakeGame) Frame() core.Frame                    { return core.Frame{} }
func (f *fakeGame) State() core.GameState                { return core.GameState{} }
func (f *fakeGame) SetLogger(l *log.Logger)              { f.logger = l }
func (f *fakeGame) SetObserver(o entity.Observer)        { f.observer = o }

type countingObserver struct{ ticks int }

func (c *countingObserver) ObserveTick(string, []entity.Event) { c.ticks++ }

func TestRegisterAndCreate(t *testing.T) {
	Register("fake-create", func() Game { return &fakeGame{} })

	if !Exists("fake-create") {
		t.Fatal("Expected fake-create to be registered")
	}

	obs := &countingObserver{}
	logger := log.New(io.Discard)
	g, err := Create("fake-create", WithLogger(logger), WithObserver(obs))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	fg := g.(*fakeGame)
	if fg.logger != logger {
		t.Error("Expected logger to be attached")
	}
	if fg.observer != obs {
		t.Error("Expected observer to be attached")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("Expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("fake-dup", func() Game { return &fakeGame{} })

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("fake-dup", func() Game { return &fakeGame{} })
}

func TestListSortedWithTitles(t *testing.T) {
	Register("fake-b", func() Game { return &fakeGame{} })
	Register("fake-a", func() Game { return &fakeGame{} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}

	found := false
	for _, info := range list {
		if info.ID == "fake-a" {
			found = true
			if info.Title != "Fake" {
				t.Errorf("Expected title Fake, got %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("Expected fake-a in list")
	}
}
