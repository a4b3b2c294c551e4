package config

import (
	"errors"
	"fmt"
	"slices"
)

// SupportedLanguages lists the UI language codes with message catalogs.
var SupportedLanguages = []string{"en", "tr"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSort(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateUI()
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateSort() error {
	if c.Sort.MinFreeMiB < 0 {
		return errors.New("sort.min_free_mib must not be negative")
	}
	if c.Sort.Source != "" && c.Sort.Source == c.Sort.Destination {
		return errors.New("sort.source and sort.destination must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must not be negative")
	}
	return nil
}

func (c *Config) validateUI() error {
	if !slices.Contains(SupportedLanguages, c.UI.Language) {
		return fmt.Errorf("ui.language: unsupported value %q (want one of %v)", c.UI.Language, SupportedLanguages)
	}
	return nil
}
