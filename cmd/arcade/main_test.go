package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

func TestParseScript(t *testing.T) {
	sc, err := parseScript([]string{"accelerate", "Steer-Left"}, []string{"use_item@3"})
	require.NoError(t, err)

	f := sc.frame(0)
	assert.True(t, f.Has(core.ActionAccelerate))
	assert.True(t, f.Has(core.ActionSteerLeft))
	assert.False(t, f.Has(core.ActionUseItem))
	assert.True(t, sc.frame(3).Has(core.ActionUseItem))

	_, err = parseScript([]string{"jump"}, nil)
	assert.Error(t, err)
	_, err = parseScript(nil, []string{"attack"})
	assert.Error(t, err)
	_, err = parseScript(nil, []string{"attack@-1"})
	assert.Error(t, err)
}

func headlessDigest(t *testing.T, id string, counts entity.Observer) (int, uint64) {
	t.Helper()
	game, err := createGame(id, log.New(io.Discard), counts)
	require.NoError(t, err)
	game.Reset(core.RuntimeConfig{TickRate: 60, Seed: 7})

	sc, err := parseScript([]string{"accelerate", "up"}, []string{"attack@10"})
	require.NoError(t, err)

	digest := newStateHash()
	h := headless{
		game:   game,
		script: sc,
		ticks:  600,
		onTick: func(tick int, g registry.Game) error {
			digest.add(tick, g)
			return nil
		},
	}
	n, _, err := h.run(context.Background())
	require.NoError(t, err)
	return n, digest.sum()
}

func TestHeadlessRunsAreReproducible(t *testing.T) {
	for _, id := range []string{"kart", "dungeon"} {
		t.Run(id, func(t *testing.T) {
			n1, d1 := headlessDigest(t, id, nil)
			n2, d2 := headlessDigest(t, id, nil)
			assert.Equal(t, n1, n2)
			assert.Equal(t, d1, d2)
		})
	}
}

func TestTallyCountsAndForwards(t *testing.T) {
	inner := newTally(nil)
	outer := newTally(inner)
	outer.ObserveTick("kart", []entity.Event{entity.Damaged{Amount: 1}, entity.Damaged{Amount: 2}})

	require.Len(t, outer.names(), 1)
	name := outer.names()[0]
	assert.Equal(t, 2, outer.count(name))
	assert.Equal(t, 2, inner.count(name))
}

func TestHeadlessStopsOnCancel(t *testing.T) {
	game, err := createGame("kart", log.New(io.Discard), nil)
	require.NoError(t, err)
	game.Reset(core.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, _, err := headless{game: game, ticks: 100}.run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
