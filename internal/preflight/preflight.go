package preflight

import (
	"context"
	"path/filepath"

	"wadmaps/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Skipped bool   `json:"skipped,omitempty"`
	Detail  string `json:"detail"`
}

// Run executes every check that applies to cfg.
func Run(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectory("Data directory", cfg.Paths.DataDir),
		CheckDirectory("Log directory", cfg.Paths.LogDir),
	}

	if !cfg.Catalog.Enabled {
		return append(results, Result{Name: "Catalog", Skipped: true, Detail: "disabled"})
	}
	if dir := filepath.Dir(cfg.Catalog.Path); dir != cfg.Paths.DataDir {
		results = append(results, CheckDirectory("Catalog directory", dir))
	}
	return append(results, CheckCatalog(context.Background(), cfg.Catalog.Path))
}

// AllPassed reports whether every non-skipped check passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Skipped {
			return false
		}
	}
	return true
}
