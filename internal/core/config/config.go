// Package config handles configuration loading and validation for herald.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/herald/internal/core/notify"
	"github.com/colonyops/herald/internal/core/notifylog"
	"github.com/colonyops/herald/internal/core/placement"
	"github.com/colonyops/herald/internal/core/styles"
	"github.com/colonyops/herald/internal/core/toasts"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the application configuration.
type Config struct {
	// DefaultDuration applies to toasts shown without an explicit duration.
	DefaultDuration *time.Duration   `yaml:"default_duration"`
	MaxToasts       int              `yaml:"max_toasts"`
	ToastPlacement  placement.Config `yaml:"toast_placement"`
	Logging         notifylog.Config `yaml:"logging"`
	TUI             TUIConfig        `yaml:"tui"`
}

// TUIConfig holds settings for the demo TUI.
type TUIConfig struct {
	Theme string `yaml:"theme"`
	// ResumeMode is how a toast's countdown resumes after losing focus:
	// "restart" (default) or "remaining".
	ResumeMode string `yaml:"resume_mode"`
}

// ToastResumeMode maps ResumeMode to the store's resume behavior.
func (t TUIConfig) ToastResumeMode() toasts.ResumeMode {
	if t.ResumeMode == ResumeRemaining {
		return toasts.ResumeRemaining
	}
	return toasts.ResumeRestart
}

// Resume modes accepted in tui.resume_mode.
const (
	ResumeRestart   = "restart"
	ResumeRemaining = "remaining"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	d := notify.DefaultDuration
	return Config{
		DefaultDuration: &d,
		ToastPlacement:  placement.DefaultConfig(),
		Logging: notifylog.Config{
			Level:   notifylog.LevelError,
			Timeout: notifylog.DefaultTimeout,
		},
		TUI: TUIConfig{
			Theme:      styles.DefaultTheme,
			ResumeMode: ResumeRestart,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/herald/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "herald", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "herald", "config.yaml")
}

// Load reads configuration from the given path and validates it. If
// configPath is empty or doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg, err := Parse(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Parse reads configuration and applies defaults without validating it.
func Parse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DefaultDuration == nil {
		c.DefaultDuration = defaults.DefaultDuration
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Timeout == 0 {
		c.Logging.Timeout = defaults.Logging.Timeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ResumeMode == "" {
		c.TUI.ResumeMode = defaults.TUI.ResumeMode
	}
}
