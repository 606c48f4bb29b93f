package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmalson/claude-analytics/internal/calculator"
	"github.com/dmalson/claude-analytics/internal/types"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}

func TestFormatSummaryFallbackLabel(t *testing.T) {
	f := NewFormatter(true)
	out := f.FormatSummary(types.UsageSummary{
		TokenData: types.TokenQuad{Input: 1500},
		Costs:     map[string]float64{"claude-4-sonnet": 0.0045},
		Source:    types.SourceFallback,
	})

	assert.Contains(t, out, "estimated (session counters)")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "claude-4-sonnet")
}

func TestFormatSummaryStructuredIncludesModelTable(t *testing.T) {
	f := NewFormatter(true)
	stats := &types.AggregatedStats{
		TotalRequests: 2,
		TotalCost:     0.5,
		Usage:         types.TokenQuad{Input: 10, Output: 5},
		ByModel: map[string]types.ModelStats{
			"claude-sonnet-4": {Count: 2, Cost: 0.5, Usage: types.TokenQuad{Input: 10, Output: 5}},
		},
		ByProject: map[string]types.ProjectStats{},
	}

	out := f.FormatSummary(types.UsageSummary{
		TokenData: stats.Usage,
		Costs:     map[string]float64{},
		Source:    types.SourceStructured,
		Stats:     stats,
	})

	assert.Contains(t, out, "actual (structured records)")
	assert.Contains(t, out, "claude-sonnet-4")
	assert.Contains(t, out, "$0.5000")
}

func TestFormatHeatmap(t *testing.T) {
	hist := calculator.BuildHistogram([]types.UsageDelta{
		{Hour: 9, Amount: 2000},
		{Hour: 15, Amount: 500},
	})

	out := NewFormatter(true).FormatHeatmap(hist)
	assert.Contains(t, out, "Peak hour: 09:00")
	assert.Contains(t, out, "Quietest hour: 15:00")
	assert.Contains(t, out, "Morning   (06-12): 2,000 tokens")
	assert.Equal(t, 24, strings.Count(out, "│")/2, "one bar per hour")
}

func TestFormatTimelineEmpty(t *testing.T) {
	out := NewFormatter(true).FormatTimeline(nil)
	assert.Contains(t, out, "No sessions found.")
}

func TestFormatTimelineCounts(t *testing.T) {
	out := NewFormatter(true).FormatTimeline([]types.SessionTimelineEntry{
		{ID: "a", Start: "09:00", End: "10:00", Duration: "1h 0m"},
		{ID: "b", Start: "11:00", End: types.Ongoing, Duration: types.Ongoing},
	})

	assert.Contains(t, out, "Total sessions: 2  Active: 1  Completed: 1")
}
