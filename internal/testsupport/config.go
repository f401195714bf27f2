package testsupport

import (
	"path/filepath"
	"testing"

	"wadmaps/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Logs go to the console only and the catalog lives inside the data dir.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = ""
	cfg.Catalog.Path = filepath.Join(base, "data", "catalog.db")
	cfg.Scan.Workers = 2
	cfg.Watch.DebounceMS = 20

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithoutCatalog disables catalog persistence on the test config.
func WithoutCatalog() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Catalog.Enabled = false
	}
}

// WithMaxFileMiB overrides the scan size cap.
func WithMaxFileMiB(mib int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scan.MaxFileMiB = mib
	}
}
