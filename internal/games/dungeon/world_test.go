package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-sim/internal/config"
	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/progress"
)

func buildDefault(t *testing.T, seed int64) *progress.Graph {
	t.Helper()
	g, err := BuildWorld(config.DefaultDungeonConfig(), seed)
	require.NoError(t, err)
	return g
}

func TestBuildWorldRooms(t *testing.T) {
	g := buildDefault(t, 7)
	require.Len(t, g.IDs(), 16+4)
	require.NoError(t, g.Validate())

	start, ok := g.Room("overworld_1_1")
	require.True(t, ok)
	assert.Empty(t, start.Dungeon)
	assert.Equal(t, core.NewRect(0, 0, 768, 672), start.Bounds)

	hall, ok := g.Room(RoomMain)
	require.True(t, ok)
	assert.True(t, hall.Dark)
	assert.Equal(t, DungeonID, hall.Dungeon)
	assert.Len(t, hall.Pits, 9)

	locks := map[string]progress.Lock{}
	for _, id := range []string{RoomMain, RoomBoss} {
		r, _ := g.Room(id)
		for _, d := range r.Doors {
			if d.Direction == core.DirUp {
				locks[id] = d.Lock
			}
		}
	}
	assert.Equal(t, progress.LockKey, locks[RoomMain])
	assert.Equal(t, progress.LockBossKey, locks[RoomBoss])
}

func TestBuildWorldIsSeeded(t *testing.T) {
	a := buildDefault(t, 99)
	b := buildDefault(t, 99)
	for _, id := range a.IDs() {
		ra, _ := a.Room(id)
		rb, _ := b.Room(id)
		assert.Equal(t, ra, rb, "room %s", id)
	}
}

func TestDoorsLandOnOpenFloor(t *testing.T) {
	cfg := config.DefaultDungeonConfig()
	g := buildDefault(t, 3)
	size := cfg.Player.Hitbox * cfg.World.TileSize

	for _, id := range g.IDs() {
		r, _ := g.Room(id)
		for _, d := range r.Doors {
			target, ok := g.Room(d.Target)
			require.True(t, ok)
			box := core.RectAround(d.TargetPos, size, size)
			for _, w := range target.Walls {
				assert.False(t, box.Intersects(w), "%s -> %s lands inside a wall", id, d.Target)
			}
			assert.True(t, target.Bounds.Contains(d.TargetPos))
		}
	}
}

func TestOverworldExitsAreMutual(t *testing.T) {
	g := buildDefault(t, 11)
	opposite := map[core.Direction]core.Direction{
		core.DirUp: core.DirDown, core.DirDown: core.DirUp,
		core.DirLeft: core.DirRight, core.DirRight: core.DirLeft,
	}
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			r, _ := g.Room(OverworldID(x, y))
			for _, d := range r.Doors {
				if d.Target == RoomEntrance {
					continue
				}
				back, _ := g.Room(d.Target)
				found := false
				for _, bd := range back.Doors {
					if bd.Target == r.ID && bd.Direction == opposite[d.Direction] {
						found = true
					}
				}
				assert.True(t, found, "%s has no way back from %s", d.Target, r.ID)
			}
		}
	}
}

func TestStartRoomKeepsEnemiesAway(t *testing.T) {
	cfg := config.DefaultDungeonConfig()
	start := core.V(cfg.World.StartX, cfg.World.StartY)
	for seed := int64(0); seed < 20; seed++ {
		g := buildDefault(t, seed)
		r, _ := g.Room(cfg.World.StartRoom)
		for _, e := range r.Enemies {
			assert.GreaterOrEqual(t, e.Pos.Dist(start), 4*cfg.World.TileSize, "seed %d", seed)
		}
	}
}

func TestDungeonPuzzleWiring(t *testing.T) {
	g := buildDefault(t, 1)
	hall, _ := g.Room(RoomMain)

	byName := map[string]progress.Spawn{}
	for _, s := range hall.Objects {
		if s.Name != "" {
			byName[s.Name] = s
		}
	}
	require.Contains(t, byName, "chest_m")
	assert.True(t, byName["chest_m"].Hidden)
	assert.Equal(t, "key", byName["chest_m"].Content)
	assert.True(t, byName["bridge_m"].Hidden)

	for _, l := range hall.Links {
		assert.Contains(t, byName, l.Source)
		assert.Contains(t, byName, l.Target)
	}
}

func TestBuildWorldRejectsUnknownStart(t *testing.T) {
	cfg := config.DefaultDungeonConfig()
	cfg.World.StartRoom = "nowhere"
	_, err := BuildWorld(cfg, 1)
	require.Error(t, err)
}

func TestLayoutMergesRuns(t *testing.T) {
	l := newLayout(6, 4, tileWall)
	rects := l.rects(10, tileWall)
	// Top and bottom rows merge; side walls are one tile each per row
	assert.Len(t, rects, 2+2*2)
	assert.Equal(t, core.NewRect(0, 0, 60, 10), rects[0])

	l.open(core.DirUp)
	assert.Equal(t, byte(tileFloor), l.at(2, 0))
	assert.Equal(t, byte(tileFloor), l.at(3, 0))
	assert.Equal(t, byte(tileWall), l.at(-1, 0))
}
