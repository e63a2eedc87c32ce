package testsupport

import (
	"path/filepath"
	"testing"

	"photozip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose history database lives in a unique temp
// directory per test. It applies any provided options on top of defaults.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithHistoryDisabled turns off run-history recording on the test config.
func WithHistoryDisabled() ConfigOption {
	return func(c *config.Config) {
		c.History.Enabled = false
	}
}

// WithCompressionLevel overrides the archive compression level on the test config.
func WithCompressionLevel(level int) ConfigOption {
	return func(c *config.Config) {
		c.Archive.CompressionLevel = level
	}
}
