// Package registry provides a global registry for simulation factories.
// Simulations register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Game is the interface every simulation implements.
// Simulations contain pure logic with no terminal or storage dependencies.
// The platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "kart", "dungeon").
	// Used for CLI commands and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the simulation.
	// Called once at start and again when restarting after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Frame returns a read-only projection of the current state for renderers.
	Frame() core.Frame

	// State returns the coarse game state (score, game over, paused).
	State() core.GameState
}

// Observable is implemented by simulations that report their per-tick events.
type Observable interface {
	SetObserver(o entity.Observer)
}

// Loggable is implemented by simulations that accept a logger.
type Loggable interface {
	SetLogger(l *log.Logger)
}

// GameInfo contains metadata about a registered simulation.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a simulation.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Typically called from an init() function.
// Panics if the ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered simulations, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a simulation by its ID and attaches the optional
// logger and observer when the simulation supports them.
// Returns an error if the ID is not registered.
func Create(id string, opts ...Option) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g := f()
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Option configures a freshly created simulation.
type Option func(Game)

// WithLogger passes l to simulations that accept a logger.
func WithLogger(l *log.Logger) Option {
	return func(g Game) {
		if lg, ok := g.(Loggable); ok && l != nil {
			lg.SetLogger(l)
		}
	}
}

// WithObserver passes o to simulations that report events.
func WithObserver(o entity.Observer) Option {
	return func(g Game) {
		if og, ok := g.(Observable); ok && o != nil {
			og.SetObserver(o)
		}
	}
}

// Exists checks if a simulation with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
