package dungeon

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/progress"
)

// Room IDs of the dungeon.
const (
	DungeonID       = "dungeon_1"
	RoomEntrance    = "dungeon_1_entrance"
	RoomMain        = "dungeon_1_main"
	RoomBoss        = "dungeon_1_boss"
	RoomTreasure    = "dungeon_1_treasure"
	overworldPrefix = "overworld"
)

// Tile glyphs used by room layouts.
const (
	tileFloor = '.'
	tileWall  = '#'
	tileTree  = 'T'
	tilePit   = 'O'
)

// OverworldID returns the ID of the overworld screen at grid (x, y).
func OverworldID(x, y int) string {
	return fmt.Sprintf("%s_%d_%d", overworldPrefix, x, y)
}

// overworldChests places one chest per listed screen.
var overworldChests = map[string]string{
	"overworld_0_0": "boots",
	"overworld_1_0": "lamp",
	"overworld_2_0": "rupee_red",
	"overworld_3_0": "power_glove",
	"overworld_2_1": "hammer",
	"overworld_3_1": "fire_rod",
	"overworld_0_3": "boomerang",
	"overworld_1_3": "hookshot",
	"overworld_2_3": "ice_rod",
	"overworld_3_3": "bow",
}

var overworldEnemies = []string{"soldier_green", "octorok", "keese"}

// layout is a mutable tile grid for one room.
type layout struct {
	w, h  int
	cells [][]byte
}

func newLayout(w, h int, border byte) *layout {
	l := &layout{w: w, h: h, cells: make([][]byte, h)}
	for y := range l.cells {
		l.cells[y] = make([]byte, w)
		for x := range l.cells[y] {
			l.cells[y][x] = tileFloor
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				l.cells[y][x] = border
			}
		}
	}
	return l
}

func (l *layout) at(x, y int) byte {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return tileWall
	}
	return l.cells[y][x]
}

func (l *layout) set(x, y int, b byte) {
	if x >= 0 && y >= 0 && x < l.w && y < l.h {
		l.cells[y][x] = b
	}
}

// open carves the two-tile gap of an exit in the border.
func (l *layout) open(dir core.Direction) {
	cx, cy := l.w/2, l.h/2
	switch dir {
	case core.DirUp:
		l.set(cx-1, 0, tileFloor)
		l.set(cx, 0, tileFloor)
	case core.DirDown:
		l.set(cx-1, l.h-1, tileFloor)
		l.set(cx, l.h-1, tileFloor)
	case core.DirLeft:
		l.set(0, cy-1, tileFloor)
		l.set(0, cy, tileFloor)
	case core.DirRight:
		l.set(l.w-1, cy-1, tileFloor)
		l.set(l.w-1, cy, tileFloor)
	}
}

// corridor reports whether a cell lies on the cross of paths between exits.
func (l *layout) corridor(x, y int) bool {
	return x == l.w/2-1 || x == l.w/2 || y == l.h/2-1 || y == l.h/2
}

// rects merges horizontal runs of the given glyphs into rectangles.
func (l *layout) rects(tile float64, glyphs ...byte) []core.Rect {
	match := func(b byte) bool {
		for _, g := range glyphs {
			if b == g {
				return true
			}
		}
		return false
	}
	var out []core.Rect
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; {
			if !match(l.cells[y][x]) {
				x++
				continue
			}
			start := x
			for x < l.w && match(l.cells[y][x]) {
				x++
			}
			out = append(out, core.NewRect(float64(start)*tile, float64(y)*tile, float64(x-start)*tile, tile))
		}
	}
	return out
}

// pits returns one rect per pit tile.
func (l *layout) pits(tile float64) []core.Rect {
	var out []core.Rect
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			if l.cells[y][x] == tilePit {
				out = append(out, core.NewRect(float64(x)*tile, float64(y)*tile, tile, tile))
			}
		}
	}
	return out
}

// builder assembles rooms in pixel space.
type builder struct {
	tile float64
	w, h int
}

func (b builder) center(x, y int) core.Vec2 {
	return core.V((float64(x)+0.5)*b.tile, (float64(y)+0.5)*b.tile)
}

func (b builder) size() core.Vec2 {
	return core.V(float64(b.w)*b.tile, float64(b.h)*b.tile)
}

// edgeDoor is an exit through the middle of a room edge. The target position
// is just inside the opposite edge of the next room.
func (b builder) edgeDoor(dir core.Direction, target string, lock progress.Lock) progress.Door {
	sz := b.size()
	inset := 1.5 * b.tile
	var at, to core.Vec2
	switch dir {
	case core.DirUp:
		at, to = core.V(sz.X/2, b.tile/2), core.V(sz.X/2, sz.Y-inset)
	case core.DirDown:
		at, to = core.V(sz.X/2, sz.Y-b.tile/2), core.V(sz.X/2, inset)
	case core.DirLeft:
		at, to = core.V(b.tile/2, sz.Y/2), core.V(sz.X-inset, sz.Y/2)
	case core.DirRight:
		at, to = core.V(sz.X-b.tile/2, sz.Y/2), core.V(inset, sz.Y/2)
	}
	return progress.Door{
		Trigger:   core.RectAround(at, b.tile, b.tile),
		Direction: dir,
		Target:    target,
		TargetPos: to,
		Lock:      lock,
	}
}

func (b builder) room(id, dungeon string, dark bool, l *layout) *progress.Room {
	sz := b.size()
	return &progress.Room{
		ID:      id,
		Dungeon: dungeon,
		Dark:    dark,
		Bounds:  core.NewRect(0, 0, sz.X, sz.Y),
		Walls:   l.rects(b.tile, tileWall, tileTree),
		Pits:    l.pits(b.tile),
	}
}

// BuildWorld generates the overworld grid and the dungeon. Overworld terrain,
// enemies and objects are seeded so equal seeds give equal worlds.
func BuildWorld(cfg config.DungeonConfig, seed int64) (*progress.Graph, error) {
	w := cfg.World
	b := builder{tile: w.TileSize, w: w.RoomTilesW, h: w.RoomTilesH}
	g := progress.NewGraph()

	for rx := 0; rx < w.OverworldW; rx++ {
		for ry := 0; ry < w.OverworldH; ry++ {
			rng := core.NewRNG(seed + int64(rx)*7919 + int64(ry)*104729)
			if err := g.Add(b.overworld(cfg, rx, ry, rng)); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range b.dungeon() {
		if err := g.Add(r); err != nil {
			return nil, err
		}
	}

	if _, ok := g.Room(w.StartRoom); !ok {
		return nil, oops.Code("WORLD_INVALID").
			With("room", w.StartRoom).
			Errorf("start room %q does not exist", w.StartRoom)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (b builder) overworld(cfg config.DungeonConfig, rx, ry int, rng core.RNG) *progress.Room {
	w := cfg.World
	l := newLayout(b.w, b.h, tileWall)
	id := OverworldID(rx, ry)
	hasEntrance := id == OverworldID(1, 1)

	var doors []progress.Door
	link := func(ok bool, dir core.Direction, tx, ty int) {
		if ok {
			l.open(dir)
			doors = append(doors, b.edgeDoor(dir, OverworldID(tx, ty), progress.LockNone))
		}
	}
	link(rx > 0, core.DirLeft, rx-1, ry)
	link(rx < w.OverworldW-1, core.DirRight, rx+1, ry)
	link(ry > 0, core.DirUp, rx, ry-1)
	link(ry < w.OverworldH-1, core.DirDown, rx, ry+1)

	// Cave mouth leading into the dungeon
	cx := b.w / 2
	if hasEntrance {
		for y := 3; y <= 4; y++ {
			for x := cx - 2; x <= cx+1; x++ {
				l.set(x, y, tileWall)
			}
		}
		doors = append(doors, progress.Door{
			Trigger:   core.RectAround(core.V(float64(cx)*b.tile, 4.5*b.tile), b.tile, b.tile),
			Direction: core.DirUp,
			Target:    RoomEntrance,
			TargetPos: core.V(float64(cx)*b.tile, float64(b.h)*b.tile-1.5*b.tile),
		})
	}

	chest, hasChest := overworldChests[id]
	reserved := func(x, y int) bool {
		if l.corridor(x, y) {
			return true
		}
		if hasChest && x >= b.w-5 && x <= b.w-3 && y >= 2 && y <= 4 {
			return true
		}
		return hasEntrance && y >= 2 && y <= 5 && x >= cx-3 && x <= cx+3
	}

	var objects []progress.Spawn
	for y := 1; y < b.h-1; y++ {
		for x := 1; x < b.w-1; x++ {
			if reserved(x, y) {
				continue
			}
			r := rng.Float64()
			switch {
			case r < 0.05 && y > 2 && y < b.h-2 && x > 2 && x < b.w-2:
				l.set(x, y, tileTree)
			case r < 0.08:
				objects = append(objects, progress.Spawn{Tag: ObjGrass, Pos: b.center(x, y)})
			case r < 0.085:
				objects = append(objects, progress.Spawn{Tag: ObjBush, Pos: b.center(x, y)})
			case r < 0.09:
				objects = append(objects, progress.Spawn{Tag: ObjRock, Pos: b.center(x, y)})
			}
		}
	}

	occupied := func(p core.Vec2) bool {
		for _, o := range objects {
			if o.Pos == p {
				return true
			}
		}
		return false
	}
	for i := 0; i < 5; i++ {
		x, y := 2+rng.Intn(b.w-4), 2+rng.Intn(b.h-4)
		p := b.center(x, y)
		if l.at(x, y) != tileFloor || occupied(p) || reserved(x, y) {
			continue
		}
		tag := ObjPot
		if rng.Float64() < 0.7 {
			tag = ObjGrass
		}
		objects = append(objects, progress.Spawn{Tag: tag, Pos: p})
	}
	if hasChest {
		objects = append(objects, progress.Spawn{Tag: ObjChest, Pos: b.center(b.w-4, 3), Name: "chest", Content: chest})
	}
	if hasEntrance {
		objects = append(objects, progress.Spawn{
			Tag:     ObjSign,
			Pos:     b.center(cx+3, 5),
			Content: "North lies the old dungeon. Mind the dark.",
		})
	}

	var enemies []progress.Spawn
	start := core.V(w.StartX, w.StartY)
	count := 2 + rng.Intn(3)
	for i := 0; i < count; i++ {
		x, y := 3+rng.Intn(b.w-6), 3+rng.Intn(b.h-6)
		tag := overworldEnemies[rng.Intn(len(overworldEnemies))]
		p := b.center(x, y)
		if l.at(x, y) != tileFloor || occupied(p) {
			continue
		}
		if id == w.StartRoom && p.Dist(start) < 4*b.tile {
			continue
		}
		enemies = append(enemies, progress.Spawn{Tag: tag, Pos: p})
	}

	r := b.room(id, "", false, l)
	r.Doors = doors
	r.Enemies = enemies
	r.Objects = objects
	return r
}

func (b builder) dungeon() []*progress.Room {
	cx := b.w / 2
	sz := b.size()
	topGap := core.V(sz.X/2, b.tile/2)

	// Entrance: a switch opens the shutter to the main hall
	entrance := newLayout(b.w, b.h, tileWall)
	entrance.open(core.DirUp)
	entrance.open(core.DirDown)
	er := b.room(RoomEntrance, DungeonID, false, entrance)
	er.Doors = []progress.Door{
		b.edgeDoor(core.DirUp, RoomMain, progress.LockNone),
		{
			Trigger:   core.RectAround(core.V(sz.X/2, sz.Y-b.tile/2), b.tile, b.tile),
			Direction: core.DirDown,
			Target:    OverworldID(1, 1),
			TargetPos: core.V(float64(cx)*b.tile, 6.5*b.tile),
		},
	}
	er.Objects = []progress.Spawn{
		{Tag: ObjPot, Pos: b.center(4, 6)},
		{Tag: ObjPot, Pos: b.center(11, 6)},
		{Tag: ObjChest, Pos: b.center(cx-1, 3), Name: "chest_map", Content: "map"},
		{Tag: ObjSwitch, Pos: b.center(3, 3), Name: "switch_e"},
		{Tag: ObjShutter, Pos: topGap, Name: "shutter_e"},
	}
	er.Links = []progress.Link{{Source: "switch_e", Effect: EffectOpenDoor, Target: "shutter_e", Once: true}}
	er.Enemies = []progress.Spawn{
		{Tag: "stalfos", Pos: b.center(5, 8)},
		{Tag: "stalfos", Pos: b.center(10, 8)},
	}

	// Main hall: dark, pits guard the compass, a plate reveals the key
	hall := newLayout(b.w, b.h, tileWall)
	hall.open(core.DirUp)
	hall.open(core.DirDown)
	for x := 1; x <= 6; x++ {
		hall.set(x, 9, tilePit)
	}
	for y := 10; y <= 12; y++ {
		hall.set(6, y, tilePit)
	}
	mr := b.room(RoomMain, DungeonID, true, hall)
	mr.Doors = []progress.Door{
		b.edgeDoor(core.DirUp, RoomBoss, progress.LockKey),
		b.edgeDoor(core.DirDown, RoomEntrance, progress.LockNone),
	}
	mr.Objects = []progress.Spawn{
		{Tag: ObjSwitch, Pos: b.center(4, 4), Name: "switch_m"},
		{Tag: ObjPlate, Pos: b.center(11, 4), Name: "plate_m"},
		{Tag: ObjChest, Pos: b.center(cx-1, 6), Name: "chest_m", Content: "key", Hidden: true},
		{Tag: ObjChest, Pos: b.center(3, 11), Name: "chest_compass", Content: "compass"},
		{Tag: ObjBridge, Pos: b.center(3, 9), Name: "bridge_m", Hidden: true},
		{Tag: ObjLockedDoor, Pos: topGap, Name: "door_m"},
	}
	mr.Links = []progress.Link{
		{Source: "plate_m", Effect: EffectRevealChest, Target: "chest_m", Once: true},
		{Source: "switch_m", Effect: EffectExtendBridge, Target: "bridge_m", Once: true},
	}
	mr.Enemies = []progress.Spawn{
		{Tag: "keese", Pos: b.center(3, 7)},
		{Tag: "keese", Pos: b.center(12, 7)},
		{Tag: "stalfos", Pos: b.center(cx, 10)},
	}

	// Boss: blocks ring the boss key until the switch lowers them
	boss := newLayout(b.w, b.h, tileWall)
	boss.open(core.DirUp)
	boss.open(core.DirDown)
	br := b.room(RoomBoss, DungeonID, false, boss)
	br.Doors = []progress.Door{
		b.edgeDoor(core.DirUp, RoomTreasure, progress.LockBossKey),
		b.edgeDoor(core.DirDown, RoomMain, progress.LockNone),
	}
	br.Objects = []progress.Spawn{
		{Tag: ObjChest, Pos: b.center(cx-1, 3), Name: "chest_boss", Content: "boss_key"},
		{Tag: ObjSwitch, Pos: b.center(12, 10), Name: "switch_b"},
		{Tag: ObjBossDoor, Pos: topGap, Name: "door_b"},
	}
	for _, c := range [][2]int{{-2, 2}, {-1, 2}, {0, 2}, {-2, 3}, {0, 3}, {-2, 4}, {-1, 4}, {0, 4}} {
		br.Objects = append(br.Objects, progress.Spawn{Tag: ObjBlock, Pos: b.center(cx+c[0], c[1]), Name: "blocks_b"})
	}
	br.Links = []progress.Link{{Source: "switch_b", Effect: EffectToggleBlocks, Target: "blocks_b"}}
	br.Enemies = []progress.Spawn{{Tag: "moblin", Pos: b.center(cx-1, 7)}}

	treasure := newLayout(b.w, b.h, tileWall)
	treasure.open(core.DirDown)
	tr := b.room(RoomTreasure, DungeonID, false, treasure)
	tr.Doors = []progress.Door{b.edgeDoor(core.DirDown, RoomBoss, progress.LockNone)}
	tr.Objects = []progress.Spawn{
		{Tag: ObjChest, Pos: b.center(cx-1, 5), Name: "chest_heart", Content: "heart_piece"},
		{Tag: ObjSign, Pos: b.center(cx-1, 9), Content: "The dungeon is conquered."},
	}

	return []*progress.Room{er, mr, br, tr}
}
