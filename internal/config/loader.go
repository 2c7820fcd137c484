package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	gameFile = "hitcircle.yaml"
	mapsFile = "maps.yaml"
)

// LoadGame loads gameplay configuration.
// Search order: customPath -> ~/.hitcircle/configs/hitcircle.yaml -> ./configs/hitcircle.yaml -> embedded default
func LoadGame(customPath string) (GameConfig, error) {
	cfg, err := load(customPath, gameFile, defaultGameYAML, DefaultGameConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadCatalog loads the map catalog.
// Search order: customPath -> ~/.hitcircle/configs/maps.yaml -> ./configs/maps.yaml -> embedded default
func LoadCatalog(customPath string) (Catalog, error) {
	cat, err := load(customPath, mapsFile, defaultMapsYAML, DefaultCatalog)
	if err != nil {
		return cat, err
	}
	if err := cat.Validate(); err != nil {
		return cat, err
	}
	return cat, nil
}

// load walks the search path for filename. Only a failing custom path is
// an error; unreadable or malformed user and local files fall through.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := fallback()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	var cfg T
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hitcircle", "configs", filename)
}
