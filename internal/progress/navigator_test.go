package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-sim/internal/core"
)

type keyring struct {
	keys     int
	bossKeys map[string]bool
}

func (k *keyring) Keys() int { return k.keys }

func (k *keyring) SpendKey() bool {
	if k.keys < 1 {
		return false
	}
	k.keys--
	return true
}

func (k *keyring) HasBossKey(dungeon string) bool { return k.bossKeys[dungeon] }

func testGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	bounds := core.NewRect(0, 0, 768, 672)
	require.NoError(t, g.Add(&Room{
		ID:     "hall",
		Bounds: bounds,
		Doors: []Door{
			{Trigger: core.NewRect(336, 0, 48, 48), Direction: core.DirUp, Target: "vault", TargetPos: core.V(360, 600), Lock: LockKey},
			{Trigger: core.NewRect(720, 288, 48, 48), Direction: core.DirRight, Target: "yard", TargetPos: core.V(60, 312)},
		},
	}))
	require.NoError(t, g.Add(&Room{ID: "vault", Bounds: bounds}))
	require.NoError(t, g.Add(&Room{ID: "yard", Dungeon: "", Bounds: bounds}))
	require.NoError(t, g.Add(&Room{
		ID:      "crypt",
		Dungeon: "d1",
		Bounds:  bounds,
		Doors:   []Door{{Direction: core.DirUp, Target: "throne", Lock: LockBossKey}},
	}))
	require.NoError(t, g.Add(&Room{ID: "throne", Dungeon: "d1", Bounds: bounds}))
	require.NoError(t, g.Validate())
	return g
}

// finish ticks the navigator until the transition completes.
func finish(n *Navigator) Phase {
	var last Phase
	for n.Transitioning() {
		last = n.Tick(16)
	}
	return last
}

func TestLockedDoorRoundTrip(t *testing.T) {
	g := testGraph(t)
	n := NewNavigator(g, "hall", 300)
	room, _ := g.Room("hall")
	door := room.Doors[0]
	keys := &keyring{}

	_, reason := n.Request(door, keys)
	assert.Equal(t, ReasonNeedsKey, reason)
	assert.Equal(t, "hall", n.Current())
	assert.False(t, n.Transitioning())

	keys.keys = 1
	tr, reason := n.Request(door, keys)
	require.Equal(t, ReasonNone, reason)
	assert.Zero(t, keys.keys, "exactly one key is consumed")
	assert.Equal(t, core.V(360, 600), tr.Door.TargetPos)

	finish(n)
	assert.Equal(t, "vault", n.Current())
}

func TestBossDoorChecksDungeon(t *testing.T) {
	g := testGraph(t)
	n := NewNavigator(g, "crypt", 300)
	room, _ := g.Room("crypt")
	keys := &keyring{keys: 3, bossKeys: map[string]bool{"d2": true}}

	_, reason := n.Request(room.Doors[0], keys)
	assert.Equal(t, ReasonNeedsBossKey, reason)
	assert.Equal(t, 3, keys.keys)

	keys.bossKeys["d1"] = true
	_, reason = n.Request(room.Doors[0], keys)
	assert.Equal(t, ReasonNone, reason)
	assert.Equal(t, 3, keys.keys, "boss keys are not consumed")
}

func TestConcurrentRequestIsRejected(t *testing.T) {
	g := testGraph(t)
	n := NewNavigator(g, "hall", 300)
	room, _ := g.Room("hall")

	_, reason := n.Request(room.Doors[1], nil)
	require.Equal(t, ReasonNone, reason)

	keys := &keyring{keys: 1}
	_, reason = n.Request(room.Doors[0], keys)
	assert.Equal(t, ReasonBusy, reason)
	assert.Equal(t, 1, keys.keys)
}

func TestScrollSwapsImmediately(t *testing.T) {
	g := testGraph(t)
	n := NewNavigator(g, "hall", 300)
	room, _ := g.Room("hall")

	tr, _ := n.Request(room.Doors[1], nil)
	assert.Equal(t, StyleScroll, tr.Style)

	p := n.Tick(16)
	assert.True(t, p.Swap)
	assert.False(t, p.Done)
	assert.Equal(t, "yard", n.Current())

	last := finish(n)
	assert.True(t, last.Done)
	assert.False(t, last.Swap)
}

func TestFadeSwapsAtMidpoint(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Add(&Room{ID: "field", Doors: []Door{{Direction: core.DirUp, Target: "gate"}}}))
	require.NoError(t, g.Add(&Room{ID: "gate", Dungeon: "d1"}))
	n := NewNavigator(g, "field", 300)
	room, _ := g.Room("field")

	tr, reason := n.Request(room.Doors[0], nil)
	require.Equal(t, ReasonNone, reason)
	assert.Equal(t, StyleFade, tr.Style)

	assert.False(t, n.Tick(100).Swap)
	assert.Equal(t, "field", n.Current())
	assert.True(t, n.Tick(100).Swap)
	assert.Equal(t, "gate", n.Current())
	assert.True(t, n.Tick(100).Done)
}

func TestUnknownTargetIsRejected(t *testing.T) {
	n := NewNavigator(NewGraph(), "nowhere", 300)
	_, reason := n.Request(Door{Direction: core.DirUp, Target: "void"}, nil)
	assert.Equal(t, ReasonUnknownRoom, reason)
}

func TestDoorAt(t *testing.T) {
	g := testGraph(t)
	n := NewNavigator(g, "hall", 300)

	d, ok := n.DoorAt(core.V(350, 10), core.DirUp, 14)
	require.True(t, ok)
	assert.Equal(t, "vault", d.Target)

	_, ok = n.DoorAt(core.V(350, 10), core.DirLeft, 14)
	assert.False(t, ok, "facing must match")

	d, ok = n.DoorAt(core.V(760, 100), core.DirRight, 14)
	require.True(t, ok, "room edge uses the door leading that way")
	assert.Equal(t, "yard", d.Target)
}

func TestGraphValidate(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.Add(&Room{ID: "a", Doors: []Door{{Direction: core.DirUp, Target: "b"}}}))
	assert.Error(t, g.Validate())
	assert.Error(t, g.Add(&Room{ID: "a"}))
	assert.Error(t, g.Add(&Room{}))
}
