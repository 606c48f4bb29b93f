// Package delta converts cumulative token snapshots into per-interval
// increments. Session logs record monotonically increasing counters, so a
// decrease means a restarted session window, not negative usage.
package delta

import (
	"sort"

	"github.com/dmalson/claude-analytics/internal/types"
)

// Sort orders snapshots by file timestamp first, then in-file clock.
// Multiple files can report the same wall-clock hour and minute on
// different days, so the file-level timestamp is the primary key.
func Sort(snapshots []types.Snapshot) []types.Snapshot {
	sorted := make([]types.Snapshot, len(snapshots))
	copy(sorted, snapshots)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.FileTimestamp != b.FileTimestamp {
			return a.FileTimestamp < b.FileTimestamp
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		return a.Minute < b.Minute
	})

	return sorted
}

// Reconstruct folds the time-sorted snapshot stream into non-negative
// usage deltas with a single forward pass. The watermark only ever moves
// up: a snapshot at or below it is treated as a stale or duplicate
// reading and contributes nothing.
//
// The "ignore decreases" rule is a policy choice kept isolated here so it
// can be swapped if counter resets turn out to need different handling.
func Reconstruct(snapshots []types.Snapshot) []types.UsageDelta {
	sorted := Sort(snapshots)

	var deltas []types.UsageDelta
	previousTotal := 0

	for _, snapshot := range sorted {
		increment := snapshot.Quad.Total() - previousTotal
		if increment <= 0 {
			continue
		}
		deltas = append(deltas, types.UsageDelta{
			Hour:   snapshot.Hour,
			Amount: increment,
		})
		previousTotal = snapshot.Quad.Total()
	}

	return deltas
}
