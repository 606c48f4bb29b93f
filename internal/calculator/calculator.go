package calculator

import (
	"github.com/dmalson/claude-analytics/internal/pricing"
	"github.com/dmalson/claude-analytics/internal/types"
)

// Calculator folds usage records and deltas into reports.
type Calculator struct {
	pricing *pricing.Table
}

func New(table *pricing.Table) *Calculator {
	return &Calculator{pricing: table}
}

// Aggregate folds all structured records into totals, per-model and
// per-project breakdowns. The fold is commutative: file and record order
// never changes the result. Records without a recorded cost are priced
// through the table when their model id pattern-matches a tier.
func (c *Calculator) Aggregate(records []types.UsageRecord) types.AggregatedStats {
	stats := types.AggregatedStats{
		ByModel:   make(map[string]types.ModelStats),
		ByProject: make(map[string]types.ProjectStats),
	}

	for _, rec := range records {
		cost := rec.CostUSD
		if cost == 0 && c.pricing != nil {
			cost = c.pricing.CostFor(rec.Model, rec.Usage)
		}

		stats.TotalCost += cost
		stats.TotalDuration += rec.DurationMs
		stats.TotalRequests++
		stats.Usage.Add(rec.Usage)

		model := stats.ByModel[rec.Model]
		model.Count++
		model.Cost += cost
		model.Duration += rec.DurationMs
		model.Usage.Add(rec.Usage)
		stats.ByModel[rec.Model] = model

		project := stats.ByProject[rec.Project]
		project.Cost += cost
		project.Duration += rec.DurationMs
		project.Requests++
		project.Usage.Add(rec.Usage)
		stats.ByProject[rec.Project] = project
	}

	return stats
}
