package store

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cutline/internal/model"
)

// Config holds user preferences shared across projects. Lives at
// ~/.config/cutline/config.yaml; a missing file means defaults.
type Config struct {
	SnapEnabled   *bool   `yaml:"snapEnabled,omitempty"`
	GridEnabled   *bool   `yaml:"gridEnabled,omitempty"`
	GridInterval  float64 `yaml:"gridInterval,omitempty"`
	SnapThreshold float64 `yaml:"snapThreshold,omitempty"`
	DefaultZoom   float64 `yaml:"defaultZoom,omitempty"`
	Theme         string  `yaml:"theme,omitempty"`
}

func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cutline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cutline"), nil
}

func configPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads the user config, filling unset fields with defaults.
func LoadConfig() (Config, error) {
	cfg := Config{}
	path, err := configPath()
	if err != nil {
		return cfg.withDefaults(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.withDefaults(), nil
		}
		return cfg.withDefaults(), err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		// A malformed config falls back to defaults rather than blocking
		// the editor.
		return Config{}.withDefaults(), err
	}
	return cfg.withDefaults(), nil
}

func SaveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// GlamourStyle maps the configured theme to a glamour standard style name.
// Anything unrecognized falls back to dark.
func (c Config) GlamourStyle() string {
	switch c.Theme {
	case "light":
		return "light"
	default:
		return "dark"
	}
}

func (c Config) withDefaults() Config {
	if c.SnapEnabled == nil {
		v := true
		c.SnapEnabled = &v
	}
	if c.GridEnabled == nil {
		v := true
		c.GridEnabled = &v
	}
	if c.GridInterval <= 0 {
		c.GridInterval = model.DefaultGridInterval
	}
	if c.SnapThreshold <= 0 {
		c.SnapThreshold = model.DefaultSnapThreshold
	}
	if c.DefaultZoom <= 0 {
		c.DefaultZoom = model.DefaultZoom
	}
	return c
}
