package main

import (
	"fmt"
	"hash"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-sim/internal/entity"
	"github.com/vovakirdan/arcade-sim/internal/games/dungeon"
	"github.com/vovakirdan/arcade-sim/internal/games/kart"
	"github.com/vovakirdan/arcade-sim/internal/registry"
)

// tally counts events by name and forwards them to next.
type tally struct {
	mu     sync.Mutex
	counts map[string]int
	next   entity.Observer
}

var _ entity.Observer = (*tally)(nil)

func newTally(next entity.Observer) *tally {
	return &tally{counts: make(map[string]int), next: next}
}

func (t *tally) ObserveTick(game string, events []entity.Event) {
	t.mu.Lock()
	for _, ev := range events {
		t.counts[ev.Name()]++
	}
	t.mu.Unlock()
	if t.next != nil {
		t.next.ObserveTick(game, events)
	}
}

// names returns the seen event names in order.
func (t *tally) names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.counts))
	for n := range t.counts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (t *tally) count(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[name]
}

// snapshotOf returns the game's snapshot for recording and hashing.
func snapshotOf(g registry.Game) any {
	switch g := g.(type) {
	case *kart.Game:
		return g.Snapshot()
	case *dungeon.Game:
		return g.Snapshot()
	}
	return g.Frame()
}

// stateHash folds every tick's snapshot into one digest.
type stateHash struct {
	h hash.Hash64
}

func newStateHash() *stateHash {
	return &stateHash{h: fnv.New64a()}
}

func (s *stateHash) add(tick int, g registry.Game) {
	fmt.Fprintf(s.h, "T%d:%+v;", tick, snapshotOf(g))
}

func (s *stateHash) sum() uint64 {
	return s.h.Sum64()
}
