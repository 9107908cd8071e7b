package config

import (
	"strings"

	"github.com/samber/oops"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty maps a name to a preset. "normal" is accepted as medium.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium", "normal":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return "", oops.Code("CONFIG_INVALID").
			With("difficulty", name).
			Errorf("unknown difficulty %q", name)
	}
}

// Profile returns the AI tuple for a preset. An empty preset uses the
// configured default.
func (c KartConfig) Profile(preset DifficultyPreset) (AIProfile, error) {
	if preset == "" {
		preset = c.AI.Difficulty
	}
	p, ok := c.AI.Presets[preset]
	if !ok {
		return AIProfile{}, oops.Code("CONFIG_INVALID").
			With("difficulty", string(preset)).
			Errorf("no ai profile for difficulty %q", preset)
	}
	return p, nil
}

// ApplyKartPreset selects the AI profile used for every opponent.
func ApplyKartPreset(cfg *KartConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.AI.Difficulty = preset
}

// ApplyDungeonPreset adjusts player survivability and enemy damage.
func ApplyDungeonPreset(cfg *DungeonConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Combat.InvincibleMs *= 1.6
		cfg.Mechanics.PitDamage = 1
	case DifficultyHard:
		for tag, e := range cfg.Enemies {
			e.Damage *= 2
			cfg.Enemies[tag] = e
		}
	}
}
