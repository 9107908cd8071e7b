package profile

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// BlobStore persists encoded profiles by slot. A missing slot loads as a nil
// blob with a nil error.
type BlobStore interface {
	SaveProfile(slot string, blob []byte) error
	LoadProfile(slot string) ([]byte, time.Time, error)
	DeleteProfile(slot string) (bool, error)
}

// Saver moves profiles in and out of a BlobStore for one slot.
type Saver struct {
	store  BlobStore
	slot   string
	logger *log.Logger
}

// NewSaver creates a saver. A nil logger discards output.
func NewSaver(store BlobStore, slot string, logger *log.Logger) *Saver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if slot == "" {
		slot = "default"
	}
	return &Saver{store: store, slot: slot, logger: logger.WithPrefix("profile")}
}

// Slot returns the slot this saver writes to.
func (s *Saver) Slot() string {
	return s.slot
}

// Save writes the profile. It reports false when the profile is invalid or the
// store is unavailable.
func (s *Saver) Save(p Profile) bool {
	if s.store == nil {
		s.logger.Warn("save skipped", "slot", s.slot, "reason", "no store")
		return false
	}
	data, err := Encode(p)
	if err != nil {
		s.logger.Warn("profile rejected", "slot", s.slot, "err", err)
		return false
	}
	if err := s.store.SaveProfile(s.slot, data); err != nil {
		s.logger.Error("save failed", "slot", s.slot, "err", err)
		return false
	}
	s.logger.Debug("profile saved", "slot", s.slot, "room", p.Room, "bytes", len(data))
	return true
}

// Load reads the profile. A missing or corrupt save reports false.
func (s *Saver) Load() (Profile, bool) {
	data, ok := s.blob()
	if !ok {
		return Profile{}, false
	}
	p, err := Decode(data)
	if err != nil {
		s.logger.Warn("corrupt save", "slot", s.slot, "err", err)
		return Profile{}, false
	}
	return p, true
}

// HasSave reports whether the slot holds a profile.
func (s *Saver) HasSave() bool {
	_, ok := s.blob()
	return ok
}

// Delete removes the slot. It reports whether anything was deleted.
func (s *Saver) Delete() bool {
	if s.store == nil {
		return false
	}
	deleted, err := s.store.DeleteProfile(s.slot)
	if err != nil {
		s.logger.Error("delete failed", "slot", s.slot, "err", err)
		return false
	}
	return deleted
}

// LastSaved returns when the slot was last written.
func (s *Saver) LastSaved() (time.Time, bool) {
	if s.store == nil {
		return time.Time{}, false
	}
	data, at, err := s.store.LoadProfile(s.slot)
	if err != nil || data == nil {
		return time.Time{}, false
	}
	return at, true
}

func (s *Saver) blob() ([]byte, bool) {
	if s.store == nil {
		return nil, false
	}
	data, _, err := s.store.LoadProfile(s.slot)
	if err != nil {
		s.logger.Error("load failed", "slot", s.slot, "err", err)
		return nil, false
	}
	return data, data != nil
}
