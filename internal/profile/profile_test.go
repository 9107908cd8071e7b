package profile

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	blobs map[string][]byte
	at    map[string]time.Time
	err   error
	clock time.Time
}

func newMemStore() *memStore {
	return &memStore{
		blobs: make(map[string][]byte),
		at:    make(map[string]time.Time),
		clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) SaveProfile(slot string, blob []byte) error {
	if m.err != nil {
		return m.err
	}
	m.blobs[slot] = append([]byte(nil), blob...)
	m.at[slot] = m.clock
	return nil
}

func (m *memStore) LoadProfile(slot string) ([]byte, time.Time, error) {
	if m.err != nil {
		return nil, time.Time{}, m.err
	}
	return m.blobs[slot], m.at[slot], nil
}

func (m *memStore) DeleteProfile(slot string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.blobs[slot]
	delete(m.blobs, slot)
	delete(m.at, slot)
	return ok, nil
}

func sample() Profile {
	return Profile{
		Health: 10, MaxHealth: 14, Magic: 20, MaxMagic: 32,
		Rupees: 42, Bombs: 3, Arrows: 12, Keys: 1,
		Room: "dungeon_1_main", X: 360, Y: 600, Facing: "up",
		Items:       []string{"sword", "boots", "shield", "boots"},
		Equipped:    "bombs",
		BossKeys:    []string{"dungeon_1"},
		Maps:        []string{"dungeon_1"},
		HeartPieces: 2,
		PlayTimeMs:  125000,
	}
}

func TestEncodeDecodeNormalizes(t *testing.T) {
	data, err := Encode(sample())
	require.NoError(t, err)

	p, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Version, p.Version)
	assert.Equal(t, []string{"boots", "shield", "sword"}, p.Items)
	assert.True(t, p.Has("shield"))
	assert.True(t, p.HasBossKey("dungeon_1"))
	assert.False(t, p.HasBossKey("dungeon_2"))
	assert.Equal(t, 125000.0, p.PlayTimeMs)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode([]byte("health: [oops"))
	assert.Error(t, err)

	_, err = Decode([]byte("version: 1\nhealth: 20\nmax_health: 12\nroom: overworld_0_0\n"))
	assert.Error(t, err)

	_, err = Decode([]byte("version: 9\nhealth: 2\nmax_health: 12\nroom: overworld_0_0\n"))
	assert.Error(t, err)
}

func TestSaverRoundTrip(t *testing.T) {
	store := newMemStore()
	s := NewSaver(store, "", nil)
	assert.Equal(t, "default", s.Slot())
	assert.False(t, s.HasSave())

	_, ok := s.LastSaved()
	assert.False(t, ok)

	require.True(t, s.Save(sample()))
	assert.True(t, s.HasSave())

	at, ok := s.LastSaved()
	require.True(t, ok)
	assert.Equal(t, store.clock, at)

	p, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, "dungeon_1_main", p.Room)

	assert.True(t, s.Delete())
	assert.False(t, s.Delete())
	assert.False(t, s.HasSave())
}

func TestSaverFailuresReportFalse(t *testing.T) {
	store := newMemStore()
	s := NewSaver(store, "slot1", nil)

	bad := sample()
	bad.Room = ""
	assert.False(t, s.Save(bad))

	store.err = errors.New("disk gone")
	assert.False(t, s.Save(sample()))
	_, ok := s.Load()
	assert.False(t, ok)
	assert.False(t, s.HasSave())
	assert.False(t, s.Delete())

	store.err = nil
	store.blobs["slot1"] = []byte("not: [valid")
	_, ok = s.Load()
	assert.False(t, ok)

	nilStore := NewSaver(nil, "x", nil)
	assert.False(t, nilStore.Save(sample()))
	assert.False(t, nilStore.HasSave())
}
