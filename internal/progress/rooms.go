package progress

import (
	"sort"

	"github.com/samber/oops"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

// Lock is the key class a door requires.
type Lock int

const (
	LockNone Lock = iota
	LockKey
	LockBossKey
)

// String returns a human-readable name for the lock.
func (l Lock) String() string {
	switch l {
	case LockKey:
		return "key"
	case LockBossKey:
		return "boss_key"
	default:
		return "none"
	}
}

// Door is a directed edge of the room graph.
type Door struct {
	Trigger   core.Rect      // Zone in the source room that requests the transition
	Direction core.Direction // Facing required to use the door
	Target    string         // Target room ID
	TargetPos core.Vec2      // Actor position in the target room
	Lock      Lock
}

// Spawn places an actor or interactable when a room loads.
type Spawn struct {
	Tag     string // Enemy or interactable type
	Pos     core.Vec2
	Name    string // Optional handle for switch links
	Content string // Chest contents or sign text
	Hidden  bool   // Starts invisible until a link reveals it
}

// Link wires a switch or plate to a dungeon effect in the same room.
type Link struct {
	Source string // Spawn name of the switch or plate
	Effect string // open_door, toggle_blocks, reveal_chest, extend_bridge
	Target string // Spawn name affected, if any
	Once   bool   // Fire only the first time
}

// Room is the static description of one screen of the world.
type Room struct {
	ID      string
	Dungeon string // Empty for the overworld
	Dark    bool
	Bounds  core.Rect
	Walls   []core.Rect
	Pits    []core.Rect
	Doors   []Door
	Enemies []Spawn
	Objects []Spawn
	Links   []Link
}

// Graph maps room IDs to rooms.
type Graph struct {
	rooms map[string]*Room
}

// NewGraph creates an empty room graph.
func NewGraph() *Graph {
	return &Graph{rooms: make(map[string]*Room)}
}

// Add registers a room. Duplicate or empty IDs are rejected.
func (g *Graph) Add(r *Room) error {
	if r == nil || r.ID == "" {
		return oops.Code("WORLD_INVALID").Errorf("room without id")
	}
	if _, exists := g.rooms[r.ID]; exists {
		return oops.Code("WORLD_INVALID").With("room", r.ID).Errorf("duplicate room %q", r.ID)
	}
	g.rooms[r.ID] = r
	return nil
}

// Room looks up a room by ID.
func (g *Graph) Room(id string) (*Room, bool) {
	r, ok := g.rooms[id]
	return r, ok
}

// IDs returns every room ID in sorted order.
func (g *Graph) IDs() []string {
	ids := make([]string, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks that every door leads to a known room.
func (g *Graph) Validate() error {
	for _, id := range g.IDs() {
		for i, d := range g.rooms[id].Doors {
			if _, ok := g.rooms[d.Target]; !ok {
				return oops.Code("WORLD_INVALID").
					With("room", id).
					With("door", i).
					Errorf("door leads to unknown room %q", d.Target)
			}
			if d.Direction == core.DirNone {
				return oops.Code("WORLD_INVALID").
					With("room", id).
					With("door", i).
					Errorf("door without direction")
			}
		}
	}
	return nil
}
