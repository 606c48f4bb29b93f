package calculator

import (
	"github.com/dmalson/claude-analytics/internal/types"
)

// HourHistogram is total reconstructed usage per hour of day.
type HourHistogram [24]int

// BuildHistogram buckets usage deltas by hour. Deltas outside 0..23 are
// discarded rather than panicking on corrupt input.
func BuildHistogram(deltas []types.UsageDelta) HourHistogram {
	var hist HourHistogram
	for _, d := range deltas {
		if d.Hour < 0 || d.Hour > 23 {
			continue
		}
		hist[d.Hour] += d.Amount
	}
	return hist
}

// Total is the sum over all hours.
func (h HourHistogram) Total() int {
	sum := 0
	for _, amount := range h {
		sum += amount
	}
	return sum
}

func (h HourHistogram) rangeSum(from, to int) int {
	sum := 0
	for hour := from; hour < to; hour++ {
		sum += h[hour]
	}
	return sum
}

// Period rollups over fixed hour ranges.
func (h HourHistogram) Morning() int   { return h.rangeSum(6, 12) }
func (h HourHistogram) Afternoon() int { return h.rangeSum(12, 18) }
func (h HourHistogram) Evening() int   { return h.rangeSum(18, 24) }
func (h HourHistogram) Night() int     { return h.rangeSum(0, 6) }

// PeakHour returns the hour with the highest usage. Ties resolve to the
// earliest hour; an all-zero histogram peaks at hour 0.
func (h HourHistogram) PeakHour() int {
	peak := 0
	for hour, amount := range h {
		if amount > h[peak] {
			peak = hour
		}
	}
	return peak
}

// QuietestActiveHour returns the hour with the lowest non-zero usage, or
// -1 when no hour saw any activity. Idle hours are excluded so an unused
// hour is never reported as the quiet one.
func (h HourHistogram) QuietestActiveHour() int {
	quietest := -1
	for hour, amount := range h {
		if amount == 0 {
			continue
		}
		if quietest == -1 || amount < h[quietest] {
			quietest = hour
		}
	}
	return quietest
}
