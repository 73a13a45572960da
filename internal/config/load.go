package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid reports a setting outside its allowed range.
var ErrInvalid = errors.New("invalid config")

// Validate checks settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Terrain.Build.CellSpacing <= 0:
		return fmt.Errorf("%w: terrain cell_spacing %v", ErrInvalid, c.Terrain.Build.CellSpacing)
	case c.Terrain.File == "" && c.Terrain.Heightmap == "" && (c.Terrain.Noise.Width < 2 || c.Terrain.Noise.Depth < 2):
		return fmt.Errorf("%w: noise terrain %dx%d", ErrInvalid, c.Terrain.Noise.Width, c.Terrain.Noise.Depth)
	case c.Vehicle.TopSpeed <= 0 || c.Vehicle.Acceleration <= 0:
		return fmt.Errorf("%w: vehicle top_speed %v acceleration %v", ErrInvalid, c.Vehicle.TopSpeed, c.Vehicle.Acceleration)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TerraDrive")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TerraDrive")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "terradrive")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "terradrive")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
