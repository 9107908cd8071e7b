// Package profile defines the adventure save record and the saver that moves
// it across the persistence boundary. Persistence failures never reach the
// simulation: the saver logs them and reports a boolean.
package profile

import (
	"sort"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Version is the current profile layout.
const Version = 1

// Profile is the player state that survives between sessions.
type Profile struct {
	Version int `yaml:"version"`

	Health    int `yaml:"health"`
	MaxHealth int `yaml:"max_health"`
	Magic     int `yaml:"magic"`
	MaxMagic  int `yaml:"max_magic"`
	Rupees    int `yaml:"rupees"`
	Bombs     int `yaml:"bombs"`
	Arrows    int `yaml:"arrows"`
	Keys      int `yaml:"keys"`

	Room   string  `yaml:"room"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Facing string  `yaml:"facing"`

	Items    []string `yaml:"items"`    // Owned equipment, sorted
	Equipped string   `yaml:"equipped"` // Item bound to the use button

	BossKeys  []string `yaml:"boss_keys"` // Dungeon IDs
	Maps      []string `yaml:"maps"`
	Compasses []string `yaml:"compasses"`

	Opened []string `yaml:"opened"` // Chests and locked doors, as room#name

	HeartPieces int     `yaml:"heart_pieces"`
	PlayTimeMs  float64 `yaml:"play_time_ms"`
}

// Has reports whether the profile owns an item.
func (p Profile) Has(item string) bool {
	return contains(p.Items, item)
}

// HasBossKey reports whether the boss key of a dungeon was collected.
func (p Profile) HasBossKey(dungeon string) bool {
	return contains(p.BossKeys, dungeon)
}

// Normalize sorts and deduplicates the set-like fields so equal profiles encode identically.
func (p *Profile) Normalize() {
	p.Items = set(p.Items)
	p.BossKeys = set(p.BossKeys)
	p.Maps = set(p.Maps)
	p.Compasses = set(p.Compasses)
	p.Opened = set(p.Opened)
}

// Validate rejects profiles the adventure cannot resume from.
func (p Profile) Validate() error {
	errb := oops.Code("PROFILE_INVALID").In("profile")
	switch {
	case p.Version != Version:
		return errb.With("version", p.Version).Errorf("unsupported profile version %d", p.Version)
	case p.Room == "":
		return errb.Errorf("profile has no room")
	case p.MaxHealth < 1 || p.Health < 0 || p.Health > p.MaxHealth:
		return errb.With("health", p.Health).With("max_health", p.MaxHealth).Errorf("health out of range")
	case p.Magic < 0 || (p.MaxMagic > 0 && p.Magic > p.MaxMagic):
		return errb.With("magic", p.Magic).Errorf("magic out of range")
	case p.Rupees < 0 || p.Bombs < 0 || p.Arrows < 0 || p.Keys < 0:
		return errb.Errorf("negative counter")
	case p.PlayTimeMs < 0:
		return errb.Errorf("negative play time")
	}
	return nil
}

// Encode serializes a profile to its stored form.
func Encode(p Profile) ([]byte, error) {
	p.Normalize()
	if p.Version == 0 {
		p.Version = Version
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, oops.Code("PROFILE_CODEC").In("profile").Wrapf(err, "encode profile")
	}
	return data, nil
}

// Decode parses and validates a stored profile.
func Decode(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, oops.Code("PROFILE_CODEC").In("profile").Wrapf(err, "decode profile")
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	p.Normalize()
	return p, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func set(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := append([]string(nil), list...)
	sort.Strings(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}
