package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic simulation
	Difficulty string // Difficulty preset name; empty means the config default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickMillis returns the fixed tick length in milliseconds.
func (c RuntimeConfig) TickMillis() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return 1000 / float64(rate)
}

// GameState represents the coarse status of a simulation.
type GameState struct {
	Score    int  // Game-specific score (race position, rupees)
	GameOver bool // Whether the run has ended
	Won      bool // Whether the run ended in the player's favor
	Paused   bool // Whether the simulation is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Notices []string // Short feedback lines for the presentation layer
}
