package entity

import "github.com/vovakirdan/arcade-sim/internal/core"

// Event is produced by a simulation component during a tick and consumed by the
// orchestrator in a fixed order. The unexported marker keeps the set closed.
type Event interface {
	Name() string
	simEvent()
}

// Observer receives the events of every completed tick.
type Observer interface {
	ObserveTick(game string, events []Event)
}

// Damaged is emitted when health is actually removed.
type Damaged struct {
	Target ID
	Source ID
	Amount int
	Health int // Health after the hit
}

func (Damaged) Name() string { return "damaged" }
func (Damaged) simEvent()    {}

// Blocked is emitted when a shield absorbed a hit.
type Blocked struct {
	Target ID
	Source ID
}

func (Blocked) Name() string { return "blocked" }
func (Blocked) simEvent()    {}

// Died is emitted exactly once per actor.
type Died struct {
	Actor ID
	Tag   string
	Pos   core.Vec2
}

func (Died) Name() string { return "died" }
func (Died) simEvent()    {}

// Stunned is emitted when a hit or hazard stuns an actor.
type Stunned struct {
	Actor    ID
	Duration float64
}

func (Stunned) Name() string { return "stunned" }
func (Stunned) simEvent()    {}

// Fired is emitted when a projectile or hazard is spawned.
type Fired struct {
	Owner      ID
	Projectile ID
	Tag        string
}

func (Fired) Name() string { return "fired" }
func (Fired) simEvent()    {}

// ItemUsed is emitted when an item was actually consumed or activated.
type ItemUsed struct {
	Actor ID
	Item  string
}

func (ItemUsed) Name() string { return "item_used" }
func (ItemUsed) simEvent()    {}

// PickedUp is emitted when an actor collects a drop or an item box.
type PickedUp struct {
	Actor  ID
	Item   string
	Amount int
}

func (PickedUp) Name() string { return "picked_up" }
func (PickedUp) simEvent()    {}

// DropSpawned is emitted when a drop table produced an item.
type DropSpawned struct {
	Drop ID
	Item string
	Pos  core.Vec2
}

func (DropSpawned) Name() string { return "drop_spawned" }
func (DropSpawned) simEvent()    {}

// ObjectBroken is emitted when an interactable is cut, shattered or opened for good.
type ObjectBroken struct {
	Object ID
	Tag    string
}

func (ObjectBroken) Name() string { return "object_broken" }
func (ObjectBroken) simEvent()    {}

// Toggled is emitted when a switch or pressure plate changes state.
type Toggled struct {
	Object ID
	Tag    string
	On     bool
}

func (Toggled) Name() string { return "toggled" }
func (Toggled) simEvent()    {}

// CheckpointPassed is emitted when a checkpoint contact was accepted.
type CheckpointPassed struct {
	Actor ID
	Index int
}

func (CheckpointPassed) Name() string { return "checkpoint" }
func (CheckpointPassed) simEvent()    {}

// LapCompleted is emitted when checkpoint 0 closes a lap.
type LapCompleted struct {
	Actor ID
	Lap   int
}

func (LapCompleted) Name() string { return "lap" }
func (LapCompleted) simEvent()    {}

// Finished is emitted once when an actor completes the final lap.
type Finished struct {
	Actor ID
	Time  float64 // Race clock in milliseconds
}

func (Finished) Name() string { return "finished" }
func (Finished) simEvent()    {}

// RaceOver is emitted when the player finishes.
type RaceOver struct {
	Position int // Player's final position, 1-based
}

func (RaceOver) Name() string { return "race_over" }
func (RaceOver) simEvent()    {}

// TransitionStarted is emitted when a door request was accepted.
type TransitionStarted struct {
	From string
	To   string
}

func (TransitionStarted) Name() string { return "transition_started" }
func (TransitionStarted) simEvent()    {}

// TransitionCompleted is emitted after the target room has been spawned.
type TransitionCompleted struct {
	Room string
}

func (TransitionCompleted) Name() string { return "transition_completed" }
func (TransitionCompleted) simEvent()    {}

// TransitionRejected is emitted when a door request was refused.
type TransitionRejected struct {
	Target string
	Reason string
}

func (TransitionRejected) Name() string { return "transition_rejected" }
func (TransitionRejected) simEvent()    {}

// Fell is emitted when an actor drops into a pit.
type Fell struct {
	Actor  ID
	Damage int
}

func (Fell) Name() string { return "fell" }
func (Fell) simEvent()    {}
