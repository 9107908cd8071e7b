// Package progress tracks how far actors have come through a race or a room graph.
// Both trackers answer every out-of-order or invalid request with a no-op or a
// reason code; neither ever fails inside a tick.
package progress

import (
	"sort"

	"github.com/vovakirdan/arcade-sim/internal/entity"
)

// Standing is one racer's progress through the checkpoint cycle.
type Standing struct {
	Actor      entity.ID
	Lap        int // Completed laps
	Checkpoint int // Last accepted checkpoint index
	Finished   bool
	FinishTime float64 // Race clock in milliseconds, valid when Finished
}

// Race sequences checkpoints and laps for a fixed field of racers.
type Race struct {
	checkpoints int
	laps        int
	order       []entity.ID // Grid order, used as the ranking tiebreak
	standings   map[entity.ID]*Standing
}

// NewRace creates a race where every racer starts at checkpoint 0, lap 0.
func NewRace(checkpoints, laps int, racers []entity.ID) *Race {
	if checkpoints < 1 {
		checkpoints = 1
	}
	r := &Race{
		checkpoints: checkpoints,
		laps:        laps,
		order:       append([]entity.ID(nil), racers...),
		standings:   make(map[entity.ID]*Standing, len(racers)),
	}
	for _, id := range racers {
		r.standings[id] = &Standing{Actor: id}
	}
	return r
}

// Checkpoints returns the number of checkpoints per lap.
func (r *Race) Checkpoints() int {
	return r.checkpoints
}

// Laps returns the configured lap count.
func (r *Race) Laps() int {
	return r.laps
}

// Next returns the checkpoint index the racer must touch next.
func (r *Race) Next(id entity.ID) int {
	s, ok := r.standings[id]
	if !ok {
		return 0
	}
	return (s.Checkpoint + 1) % r.checkpoints
}

// Touch records a checkpoint contact at race clock ms.
// Only (current+1) mod N is accepted; anything else, unknown racers and
// finished racers are ignored.
func (r *Race) Touch(id entity.ID, index int, clock float64) []entity.Event {
	s, ok := r.standings[id]
	if !ok || s.Finished {
		return nil
	}
	if index != (s.Checkpoint+1)%r.checkpoints {
		return nil
	}

	s.Checkpoint = index
	events := []entity.Event{entity.CheckpointPassed{Actor: id, Index: index}}
	if index != 0 {
		return events
	}

	s.Lap++
	events = append(events, entity.LapCompleted{Actor: id, Lap: s.Lap})
	if s.Lap >= r.laps {
		s.Finished = true
		s.FinishTime = clock
		events = append(events, entity.Finished{Actor: id, Time: clock})
	}
	return events
}

// Standing returns a copy of the racer's progress.
func (r *Race) Standing(id entity.ID) (Standing, bool) {
	s, ok := r.standings[id]
	if !ok {
		return Standing{}, false
	}
	return *s, true
}

// Finished reports whether the racer has crossed the line.
func (r *Race) Finished(id entity.ID) bool {
	s, ok := r.standings[id]
	return ok && s.Finished
}

// Standings returns every racer ranked: finished before unfinished, ascending
// finish time among finished, then descending (lap, checkpoint). Ties keep grid order.
func (r *Race) Standings() []Standing {
	out := make([]Standing, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.standings[id])
	}
	Rank(out)
	return out
}

// Position returns the racer's 1-based position, or 0 if unknown.
func (r *Race) Position(id entity.ID) int {
	for i, s := range r.Standings() {
		if s.Actor == id {
			return i + 1
		}
	}
	return 0
}

// Rank sorts standings in place by race order, stable on input order.
func Rank(s []Standing) {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if a.Finished != b.Finished {
			return a.Finished
		}
		if a.Finished {
			return a.FinishTime < b.FinishTime
		}
		if a.Lap != b.Lap {
			return a.Lap > b.Lap
		}
		return a.Checkpoint > b.Checkpoint
	})
}
