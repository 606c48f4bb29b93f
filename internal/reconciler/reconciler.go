// Package reconciler unifies the two usage sources: structured per-request
// records when any exist, otherwise the last-known cumulative counters from
// the session-state file. Callers learn which source produced the numbers
// so reports can label them actual vs estimated.
package reconciler

import (
	"context"
	"fmt"
	"os"

	"github.com/dmalson/claude-analytics/internal/calculator"
	"github.com/dmalson/claude-analytics/internal/loader"
	"github.com/dmalson/claude-analytics/internal/pricing"
	"github.com/dmalson/claude-analytics/internal/state"
	"github.com/dmalson/claude-analytics/internal/types"
)

type Reconciler struct {
	projectsRoot string
	statePath    string
	loader       *loader.Loader
	calc         *calculator.Calculator
	pricing      *pricing.Table
}

type Options struct {
	ProjectsRoot string
	StatePath    string
	Debug        bool
}

func New(opts Options) *Reconciler {
	table := pricing.Default()
	ld := loader.New()
	ld.SetDebug(opts.Debug)

	return &Reconciler{
		projectsRoot: opts.ProjectsRoot,
		statePath:    opts.StatePath,
		loader:       ld,
		calc:         calculator.New(table),
		pricing:      table,
	}
}

// GetUsage never fails; the worst outcome is an all-zero fallback summary.
// Structured data, when any exists, always wins regardless of recency.
func (r *Reconciler) GetUsage(ctx context.Context) types.UsageSummary {
	records, err := r.loader.LoadFromRoot(ctx, r.projectsRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: structured usage unavailable: %v\n", err)
	} else if len(records) > 0 {
		stats := r.calc.Aggregate(records)
		if stats.TotalRequests > 0 {
			return types.UsageSummary{
				TokenData: stats.Usage,
				Costs:     r.pricing.Estimate(stats.Usage),
				Source:    types.SourceStructured,
				Stats:     &stats,
			}
		}
	}

	quad, err := state.LastKnownUsage(r.statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: reading state file: %v\n", err)
		quad = types.TokenQuad{}
	}

	return types.UsageSummary{
		TokenData: quad,
		Costs:     r.pricing.Estimate(quad),
		Source:    types.SourceFallback,
	}
}
