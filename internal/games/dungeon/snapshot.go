package dungeon

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Snapshot is a read-only copy of the adventure after a tick.
type Snapshot struct {
	Tick          uint64
	PlayTimeMs    float64
	Room          string
	Dark          bool
	Transitioning bool
	Over          bool
	Won           bool
	Paused        bool

	Player      ActorView
	Carrying    string
	Swinging    bool
	Spin        bool
	Charged     bool
	Equipped    string
	Items       []string
	Magic       int
	Bombs       int
	Arrows      int
	Rupees      int
	Keys        int
	HeartPieces int

	Enemies     []ActorView
	Objects     []ObjectView
	Projectiles []ActorView
	Drops       []ActorView
	Lights      []core.Vec2
}

// ActorView is one actor in a snapshot.
type ActorView struct {
	ID        entity.ID
	Tag       string
	Pos       core.Vec2
	Facing    core.Direction
	Health    int
	MaxHealth int
	Status    []string
}

// ObjectView is one interactable in a snapshot.
type ObjectView struct {
	ID     entity.ID
	Tag    string
	Name   string
	Pos    core.Vec2
	On     bool
	Hidden bool
}

func viewOf(a *entity.Actor) ActorView {
	return ActorView{
		ID:        a.ID,
		Tag:       a.Tag,
		Pos:       a.Pos,
		Facing:    a.Facing,
		Health:    a.Health,
		MaxHealth: a.MaxHealth,
		Status:    a.Status.Labels(),
	}
}

// Snapshot returns the current adventure state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		PlayTimeMs: g.playTime,
		Over:       g.over,
		Won:        g.won,
		Paused:     g.paused,
	}
	if g.player == nil {
		return s
	}
	s.Room = g.room.ID
	s.Dark = g.room.Dark
	s.Transitioning = g.nav.Transitioning()
	s.Player = viewOf(g.player)
	if o := g.object(g.player.Held); o != nil {
		s.Carrying = o.Tag
	}
	s.Swinging = g.swing.Active()
	s.Spin = g.swingSpin && s.Swinging
	s.Charged = g.charge.Charged()

	inv := g.inv
	s.Equipped = inv.Equipped.String()
	s.Items = inv.Items()
	s.Magic = inv.Magic.Current
	s.Bombs = inv.Bombs.Current
	s.Arrows = inv.Arrows.Current
	s.Rupees = inv.Rupees
	s.Keys = inv.Keys()
	s.HeartPieces = inv.HeartPieces

	for _, e := range g.enemies {
		s.Enemies = append(s.Enemies, viewOf(&e.Actor))
	}
	for _, o := range g.objects {
		s.Objects = append(s.Objects, ObjectView{ID: o.ID, Tag: o.Tag, Name: o.Name, Pos: o.Pos, On: o.On, Hidden: o.Hidden})
	}
	for _, p := range g.projectiles {
		s.Projectiles = append(s.Projectiles, viewOf(&p.Actor))
	}
	for _, d := range g.drops {
		s.Drops = append(s.Drops, viewOf(&d.Actor))
	}
	for _, l := range g.lights {
		s.Lights = append(s.Lights, l.Pos)
	}
	return s
}

var objectGlyphs = map[string]rune{
	ObjGrass:      '"',
	ObjBush:       '*',
	ObjPot:        'u',
	ObjRock:       'o',
	ObjChest:      '=',
	ObjSign:       '!',
	ObjSwitch:     '/',
	ObjPlate:      '_',
	ObjLockedDoor: '+',
	ObjBossDoor:   '%',
	ObjShutter:    '|',
	ObjBlock:      '#',
	ObjBridge:     ':',
}

var projectileGlyphs = map[string]rune{
	ProjArrow:     '-',
	ProjBomb:      'b',
	ProjBoomerang: '<',
	ProjHookshot:  '>',
	ProjFire:      '^',
	ProjIce:       '~',
	ProjRock:      '.',
	ProjThrown:    'u',
}

// Frame projects the room onto the generic presentation frame. Actors and
// objects outside every light are left out of dark rooms.
func (g *Game) Frame() core.Frame {
	if g.room == nil {
		return core.Frame{}
	}
	f := core.Frame{Bounds: g.room.Bounds, Walls: g.room.Walls}
	add := func(pos core.Vec2, glyph rune, tint core.Tint) {
		if g.Lit(pos) {
			f.Sprites = append(f.Sprites, core.Sprite{Pos: pos, Glyph: glyph, Tint: tint})
		}
	}

	for _, pit := range g.room.Pits {
		add(pit.Center(), ' ', core.TintMuted)
	}
	for _, o := range g.objects {
		if o.Dead || o.Hidden {
			continue
		}
		glyph, tint := objectGlyphs[o.Tag], core.TintDefault
		switch o.Tag {
		case ObjChest:
			if o.On {
				glyph = '_'
			}
			tint = core.TintPickup
		case ObjBlock, ObjLockedDoor, ObjBossDoor, ObjShutter:
			if o.On {
				continue
			}
			tint = core.TintWall
		case ObjSwitch, ObjPlate:
			if o.On {
				tint = core.TintAlly
			}
		}
		add(o.Pos, glyph, tint)
	}
	for _, d := range g.drops {
		add(d.Pos, '$', core.TintPickup)
	}
	for _, e := range g.enemies {
		tint := core.TintEnemy
		if e.Status.Stunned.Active() {
			tint = core.TintMuted
		}
		add(e.Pos, rune(strings.ToUpper(e.Tag)[0]), tint)
	}
	for _, p := range g.projectiles {
		tint := core.TintAlly
		if !g.playerProjectile(p) {
			tint = core.TintHazard
		}
		add(p.Pos, projectileGlyphs[p.Tag], tint)
	}
	if area, ok := g.SwingArea(); ok {
		add(area.Center(), '/', core.TintPlayer)
	}
	tint := core.TintPlayer
	if g.player.Status.Invincible.Active() {
		tint = core.TintMuted
	}
	f.Sprites = append(f.Sprites, core.Sprite{Pos: g.player.Pos, Glyph: '@', Tint: tint})
	f.HUD = g.hud()
	return f
}

func (g *Game) hud() []string {
	p, inv := g.player, g.inv
	hearts := fmt.Sprintf("Life %d/%d  Magic %d/%d  Rupees %d  Bombs %d  Arrows %d  Keys %d",
		p.Health, p.MaxHealth, inv.Magic.Current, inv.Magic.Max, inv.Rupees, inv.Bombs.Current, inv.Arrows.Current, inv.Keys())
	item := inv.Equipped.String()
	if item == "" {
		item = "-"
	}
	where := fmt.Sprintf("%s  Item %s", strings.ReplaceAll(g.room.ID, "_", " "), item)
	if g.inv.BossKeys[DungeonID] {
		where += "  [boss key]"
	}
	lines := []string{hearts, where}

	switch {
	case g.over:
		lines = append(lines, "Game over. Press R to try again")
	case g.paused:
		lines = append(lines, "PAUSED")
	case g.charge.Charged():
		lines = append(lines, "Spin ready")
	}
	return lines
}
