package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-sim/internal/profile"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestProfileSlots(t *testing.T) {
	store := openTemp(t)
	store.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	blob, at, err := store.LoadProfile("missing")
	if err != nil || blob != nil || !at.IsZero() {
		t.Fatalf("LoadProfile(missing) = %v, %v, %v; want nil, zero, nil", blob, at, err)
	}

	if err := store.SaveProfile("a", []byte("first")); err != nil {
		t.Fatalf("SaveProfile() failed: %v", err)
	}
	if err := store.SaveProfile("a", []byte("second")); err != nil {
		t.Fatalf("SaveProfile() overwrite failed: %v", err)
	}

	blob, at, err = store.LoadProfile("a")
	if err != nil {
		t.Fatalf("LoadProfile() failed: %v", err)
	}
	if !bytes.Equal(blob, []byte("second")) {
		t.Errorf("blob = %q, want %q", blob, "second")
	}
	if at.UnixMilli() != 1_700_000_000_000 {
		t.Errorf("saved at = %v, want fixed clock", at)
	}

	slots, err := store.ProfileSlots()
	if err != nil {
		t.Fatalf("ProfileSlots() failed: %v", err)
	}
	if len(slots) != 1 || slots[0] != "a" {
		t.Errorf("slots = %v, want [a]", slots)
	}

	deleted, err := store.DeleteProfile("a")
	if err != nil || !deleted {
		t.Errorf("DeleteProfile(a) = %v, %v; want true, nil", deleted, err)
	}
	deleted, err = store.DeleteProfile("a")
	if err != nil || deleted {
		t.Errorf("second DeleteProfile(a) = %v, %v; want false, nil", deleted, err)
	}
}

func TestStoreBacksProfileSaver(t *testing.T) {
	store := openTemp(t)
	saver := profile.NewSaver(store, "slot1", nil)

	p := profile.Profile{Health: 8, MaxHealth: 12, Room: "dungeon_1_entrance", X: 336, Y: 528, Facing: "up"}
	if !saver.Save(p) {
		t.Fatal("Save() returned false")
	}
	got, ok := saver.Load()
	if !ok {
		t.Fatal("Load() returned false")
	}
	if got.Room != p.Room || got.Health != p.Health {
		t.Errorf("loaded %+v, want room %s health %d", got, p.Room, p.Health)
	}
	if _, ok := saver.LastSaved(); !ok {
		t.Error("LastSaved() reported no save")
	}
}

func TestRaceResults(t *testing.T) {
	store := openTemp(t)

	results := []RaceResult{
		{Difficulty: "medium", Position: 3, Racers: 8, FinishMs: 95000, Laps: 3, Seed: 1},
		{Difficulty: "medium", Position: 1, Racers: 8, FinishMs: 88000, Laps: 3, Seed: 2},
		{Difficulty: "hard", Position: 5, Racers: 8, FinishMs: 91000, Laps: 3, Seed: 3},
	}
	var ids []string
	for _, r := range results {
		id, err := store.SaveRaceResult(r)
		if err != nil {
			t.Fatalf("SaveRaceResult() failed: %v", err)
		}
		ids = append(ids, id)
	}

	best, err := store.BestTimes("medium", 10)
	if err != nil {
		t.Fatalf("BestTimes() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("expected 2 medium results, got %d", len(best))
	}
	if best[0].FinishMs != 88000 || best[1].FinishMs != 95000 {
		t.Errorf("best times out of order: %v, %v", best[0].FinishMs, best[1].FinishMs)
	}

	all, err := store.BestTimes("", 2)
	if err != nil {
		t.Fatalf("BestTimes(all) failed: %v", err)
	}
	if len(all) != 2 || all[1].Difficulty != "hard" {
		t.Errorf("BestTimes(all, 2) = %+v", all)
	}

	got, err := store.RaceResultByID(ids[2])
	if err != nil {
		t.Fatalf("RaceResultByID() failed: %v", err)
	}
	if got == nil || got.Seed != 3 || got.CreatedAt.IsZero() {
		t.Errorf("RaceResultByID() = %+v", got)
	}

	missing, err := store.RaceResultByID("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	if err != nil || missing != nil {
		t.Errorf("RaceResultByID(missing) = %v, %v; want nil, nil", missing, err)
	}

	recent, err := store.RecentResults(0)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("expected 3 recent results, got %d", len(recent))
	}

	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	best, _ = store.BestTimes("", 10)
	if len(best) != 0 {
		t.Errorf("expected no results after clear, got %d", len(best))
	}
}
