package testsupport

import (
	"path/filepath"
	"testing"

	"photosort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Source and destination folders are created under the same base directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Sort.Source = filepath.Join(base, "inbox")
	cfgVal.Sort.Destination = filepath.Join(base, "library")
	cfgVal.Logging.RunLogs = false
	cfgVal.UI.Language = "en"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithLanguage selects the UI language.
func WithLanguage(lang string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.UI.Language = lang
	}
}

// WithRecursive sets the default recursion flag.
func WithRecursive(recursive bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.Recursive = recursive
	}
}

// WithHistory toggles the run journal.
func WithHistory(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = enabled
	}
}

// WithRunLogs toggles per-run log files.
func WithRunLogs(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.RunLogs = enabled
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
