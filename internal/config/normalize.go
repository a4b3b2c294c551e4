package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSort(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeUI()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// Empty sort paths stay empty: the sort command treats them as missing.
func (c *Config) normalizeSort() error {
	var err error
	if c.Sort.Source, err = expandPath(c.Sort.Source); err != nil {
		return fmt.Errorf("sort.source: %w", err)
	}
	if c.Sort.Destination, err = expandPath(c.Sort.Destination); err != nil {
		return fmt.Errorf("sort.destination: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeUI() {
	c.UI.Language = strings.ToLower(strings.TrimSpace(c.UI.Language))
	if c.UI.Language != "" {
		return
	}
	if value, ok := os.LookupEnv("LANG"); ok {
		c.UI.Language = languageFromLocale(value)
	}
	if c.UI.Language == "" {
		c.UI.Language = "en"
	}
}

// languageFromLocale maps a POSIX locale such as "tr_TR.UTF-8" to a
// supported language code, or "" when none matches.
func languageFromLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(locale, "_.@"); idx >= 0 {
		locale = locale[:idx]
	}
	for _, lang := range SupportedLanguages {
		if locale == lang {
			return lang
		}
	}
	return ""
}
