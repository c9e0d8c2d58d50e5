package preflight

import (
	"context"

	"sigview/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckReadableDirectory("Archive directory", cfg.Paths.ArchiveDir),
		CheckWritableDirectory("Catalog directory", cfg.Paths.CatalogDir),
		CheckWritableDirectory("Log directory", cfg.Paths.LogDir),
		CheckCatalog(ctx, cfg),
	}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
