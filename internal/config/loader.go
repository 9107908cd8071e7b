package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadKart loads kart racer configuration.
// Search order: customPath -> ~/.arcade/configs/kart.yaml -> ./configs/kart.yaml -> embedded default
func LoadKart(customPath string) (KartConfig, error) {
	cfg, err := load("kart.yaml", customPath, defaultKartYAML, DefaultKartConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDungeon loads adventure configuration.
// Search order: customPath -> ~/.arcade/configs/dungeon.yaml -> ./configs/dungeon.yaml -> embedded default
func LoadDungeon(customPath string) (DungeonConfig, error) {
	cfg, err := load("dungeon.yaml", customPath, defaultDungeonYAML, DefaultDungeonConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load walks the search order for one file. Documents are decoded on top of
// the hardcoded defaults, so a partial file only overrides what it names.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := decodeFile(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := decodeFile(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decodeFile[T any](path string, fallback func() T) (T, bool) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
