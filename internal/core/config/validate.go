package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/herald/internal/core/notifylog"
	"github.com/colonyops/herald/internal/core/styles"
)

// Validate checks that the configuration is valid. Failures are returned as
// criterio.FieldErrors keyed by the YAML path of the offending value.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateToasts(),
		c.ToastPlacement.Validate("toast_placement"),
		c.validateLogging(),
		c.validateTUI(),
	)
}

// ValidateDeep runs Validate and additionally checks that configPath, when
// given, is a readable file.
func (c *Config) ValidateDeep(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.Validate(),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateToasts() error {
	var errs criterio.FieldErrorsBuilder

	if c.DefaultDuration != nil && *c.DefaultDuration < 0 {
		errs = errs.Append("default_duration", fmt.Errorf("must not be negative, got %s", *c.DefaultDuration))
	}
	if c.MaxToasts < 0 {
		errs = errs.Append("max_toasts", fmt.Errorf("must not be negative, got %d", c.MaxToasts))
	}

	return errs.ToError()
}

func (c *Config) validateLogging() error {
	var errs criterio.FieldErrorsBuilder
	l := c.Logging

	if l.Level != "" && !l.Level.IsValid() {
		errs = errs.Append("logging.log_level", fmt.Errorf("unknown level %q, expected one of %s", l.Level, joinLevels()))
	}
	if l.Endpoint != "" {
		if err := validateEndpoint(l.Endpoint); err != nil {
			errs = errs.Append("logging.endpoint", err)
		}
	}
	if l.Timeout < 0 {
		errs = errs.Append("logging.timeout", fmt.Errorf("must not be negative, got %s", l.Timeout))
	}
	if l.Retries < 0 {
		errs = errs.Append("logging.retries", fmt.Errorf("must not be negative, got %d", l.Retries))
	}

	return errs.ToError()
}

func (c *Config) validateTUI() error {
	return criterio.ValidateStruct(
		criterio.Run("tui.theme", c.TUI.Theme, func(name string) error {
			if name == "" || styles.IsTheme(name) {
				return nil
			}
			return fmt.Errorf("unknown theme %q, expected one of %s", name, strings.Join(styles.ThemeNames(), ", "))
		}),
		criterio.Run("tui.resume_mode", c.TUI.ResumeMode, func(mode string) error {
			switch mode {
			case "", ResumeRestart, ResumeRemaining:
				return nil
			}
			return fmt.Errorf("unknown resume mode %q, expected %s or %s", mode, ResumeRestart, ResumeRemaining)
		}),
	)
}

func validateEndpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("url must include a host")
	}
	return nil
}

func joinLevels() string {
	names := make([]string, len(notifylog.Levels))
	for i, l := range notifylog.Levels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
