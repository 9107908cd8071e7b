package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/arcade-sim/internal/entity"
)

func TestCheckpointOrderIsStrict(t *testing.T) {
	r := NewRace(8, 3, []entity.ID{1})

	for _, cp := range []int{1, 2, 3, 2, 4} {
		r.Touch(1, cp, 0)
	}

	s, ok := r.Standing(1)
	require.True(t, ok)
	assert.Equal(t, 4, s.Checkpoint)
	assert.Zero(t, s.Lap)
}

func TestCheckpointSkipIsIgnored(t *testing.T) {
	r := NewRace(8, 3, []entity.ID{1})

	assert.Empty(t, r.Touch(1, 3, 0))
	assert.Empty(t, r.Touch(1, 0, 0), "checkpoint 0 at the start is not a lap")
	assert.Equal(t, 1, r.Next(1))
}

// lap drives a racer through one full cycle ending on checkpoint 0.
func lap(r *Race, id entity.ID, clock float64) []entity.Event {
	var events []entity.Event
	for cp := 1; cp < r.Checkpoints(); cp++ {
		events = append(events, r.Touch(id, cp, clock)...)
	}
	return append(events, r.Touch(id, 0, clock)...)
}

func TestLapAndFinish(t *testing.T) {
	r := NewRace(8, 2, []entity.ID{1})

	events := lap(r, 1, 40000)
	assert.Contains(t, events, entity.Event(entity.LapCompleted{Actor: 1, Lap: 1}))
	assert.False(t, r.Finished(1))

	events = lap(r, 1, 92000)
	assert.Contains(t, events, entity.Event(entity.Finished{Actor: 1, Time: 92000}))
	assert.True(t, r.Finished(1))
}

func TestFinishTimeIsFrozen(t *testing.T) {
	r := NewRace(8, 1, []entity.ID{1})
	lap(r, 1, 92000)

	assert.Empty(t, r.Touch(1, 1, 95000))
	assert.Empty(t, lap(r, 1, 99000))

	s, _ := r.Standing(1)
	assert.Equal(t, 92000.0, s.FinishTime)
	assert.Equal(t, 1, s.Lap)
}

func TestUnknownRacerIsIgnored(t *testing.T) {
	r := NewRace(8, 3, []entity.ID{1})
	assert.Empty(t, r.Touch(9, 1, 0))
	assert.Zero(t, r.Position(9))
}

func TestRankOrder(t *testing.T) {
	const a, b, c = entity.ID(1), entity.ID(2), entity.ID(3)
	standings := []Standing{
		{Actor: a, Lap: 3, Finished: true, FinishTime: 80000},
		{Actor: b, Lap: 3, Finished: true, FinishTime: 75000},
		{Actor: c, Lap: 2, Checkpoint: 5},
	}

	Rank(standings)

	got := []entity.ID{standings[0].Actor, standings[1].Actor, standings[2].Actor}
	assert.Equal(t, []entity.ID{b, a, c}, got)
}

func TestRankUnfinishedByProgressThenGridOrder(t *testing.T) {
	standings := []Standing{
		{Actor: 1, Lap: 1, Checkpoint: 2},
		{Actor: 2, Lap: 1, Checkpoint: 6},
		{Actor: 3, Lap: 2, Checkpoint: 0},
		{Actor: 4, Lap: 1, Checkpoint: 2},
	}

	Rank(standings)

	var got []entity.ID
	for _, s := range standings {
		got = append(got, s.Actor)
	}
	assert.Equal(t, []entity.ID{3, 2, 1, 4}, got)
}

func TestRacePosition(t *testing.T) {
	r := NewRace(4, 1, []entity.ID{1, 2, 3})
	r.Touch(2, 1, 0)
	r.Touch(2, 2, 0)
	r.Touch(3, 1, 0)

	assert.Equal(t, 1, r.Position(2))
	assert.Equal(t, 2, r.Position(3))
	assert.Equal(t, 3, r.Position(1))
}
