package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/harbor-view/internal/logger"
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
		return filepath.Join(home, "Library", "Application Support", "HarborView")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "HarborView")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "harbor-view")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "harbor-view")
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

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Animation.TimeScale <= 0 {
		return fmt.Errorf("time_scale must be positive, got %v", c.Animation.TimeScale)
	}
	if c.Animation.WaterSegments < 1 {
		return fmt.Errorf("water_segments must be at least 1, got %d", c.Animation.WaterSegments)
	}
	if c.Camera.Damping < 0 || c.Camera.Damping >= 1 {
		return fmt.Errorf("damping must be in [0, 1), got %v", c.Camera.Damping)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
