package kart

import (
	"fmt"
	"math"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Snapshot is a read-only copy of the race after a tick.
type Snapshot struct {
	Tick        uint64
	ClockMs     float64
	CountdownMs float64 // Remaining start countdown; 0 once racing
	Over        bool
	Paused      bool
	Laps        int
	Karts       []KartView // Ranked, leader first
	Boxes       []core.Vec2
	Shells      []ShellView
	Bananas     []core.Vec2
}

// KartView is one racer in a snapshot.
type KartView struct {
	ID         entity.ID
	Label      string
	Player     bool
	Pos        core.Vec2
	Rotation   float64
	Speed      float64
	Position   int
	Lap        int
	Checkpoint int
	Finished   bool
	FinishMs   float64
	Item       string
	Status     []string
}

// ShellView is one shell in flight.
type ShellView struct {
	ID     entity.ID
	Tag    string
	Pos    core.Vec2
	Owner  entity.ID
	Target entity.ID // entity.None for green shells
}

// Snapshot returns the current race state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        g.tick,
		ClockMs:     g.clock,
		CountdownMs: g.countdown.Remaining(),
		Over:        g.over,
		Paused:      g.paused,
	}
	if g.race == nil {
		return s
	}
	s.Laps = g.race.Laps()

	for i, st := range g.race.Standings() {
		k := g.byID[st.Actor]
		s.Karts = append(s.Karts, KartView{
			ID:         k.ID,
			Label:      k.Label,
			Player:     k.Player,
			Pos:        k.Pos,
			Rotation:   k.Rotation,
			Speed:      k.Speed,
			Position:   i + 1,
			Lap:        st.Lap,
			Checkpoint: st.Checkpoint,
			Finished:   st.Finished,
			FinishMs:   st.FinishTime,
			Item:       k.HeldItem,
			Status:     k.Status.Labels(),
		})
	}
	for _, b := range g.boxes {
		if b.Visible() {
			s.Boxes = append(s.Boxes, b.Pos)
		}
	}
	for _, sh := range g.shells {
		s.Shells = append(s.Shells, ShellView{ID: sh.ID, Tag: sh.Tag, Pos: sh.Pos, Owner: sh.owner, Target: sh.target})
	}
	for _, h := range g.hazards {
		s.Bananas = append(s.Bananas, h.Pos)
	}
	return s
}

// Frame projects the race onto the generic presentation frame.
func (g *Game) Frame() core.Frame {
	f := core.Frame{
		Bounds: g.track.Bounds,
		Walls:  g.track.Walls,
	}
	for _, b := range g.boxes {
		if b.Visible() {
			f.Sprites = append(f.Sprites, core.Sprite{Pos: b.Pos, Glyph: '?', Tint: core.TintPickup})
		}
	}
	for _, h := range g.hazards {
		f.Sprites = append(f.Sprites, core.Sprite{Pos: h.Pos, Glyph: ')', Tint: core.TintHazard})
	}
	for _, sh := range g.shells {
		f.Sprites = append(f.Sprites, core.Sprite{Pos: sh.Pos, Glyph: 'o', Tint: core.TintEnemy})
	}
	// Player drawn last so it stays on top
	for i := len(g.karts) - 1; i >= 0; i-- {
		k := g.karts[i]
		sp := core.Sprite{Pos: k.Pos, Glyph: rune('0' + i%10), Tint: core.TintAlly}
		if k.Player {
			sp.Glyph, sp.Tint = '@', core.TintPlayer
		}
		if k.Status.Stunned.Active() {
			sp.Tint = core.TintMuted
		}
		f.Sprites = append(f.Sprites, sp)
	}
	f.HUD = g.hud()
	return f
}

func (g *Game) hud() []string {
	p := g.Player()
	if p == nil || g.race == nil {
		return nil
	}
	st, _ := g.race.Standing(p.ID)
	lap := min(st.Lap+1, g.race.Laps())
	lines := []string{
		fmt.Sprintf("Pos %s/%d  Lap %d/%d  Time %s", ordinal(g.race.Position(p.ID)), len(g.karts),
			lap, g.race.Laps(), clockString(g.clock)),
	}
	item := p.HeldItem
	if item == "" {
		item = "-"
	}
	speed := fmt.Sprintf("Speed %3.0f  Item %s", math.Abs(p.Speed), item)
	if p.Status.Drifting {
		speed += fmt.Sprintf("  Drift %3.0f%%", p.Status.DriftCharge)
	}
	lines = append(lines, speed)

	switch {
	case g.countdown.Active():
		lines = append(lines, fmt.Sprintf("Starting in %d", int(math.Ceil(g.countdown.Remaining()/1000))))
	case g.over:
		lines = append(lines, fmt.Sprintf("Finished %s! Press R to race again", ordinal(g.position)))
	case g.paused:
		lines = append(lines, "PAUSED")
	}
	return lines
}

// clockString formats race milliseconds as m:ss.mmm.
func clockString(ms float64) string {
	total := int(ms)
	return fmt.Sprintf("%d:%02d.%03d", total/60000, total/1000%60, total%1000)
}
