package delta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmalson/claude-analytics/internal/types"
)

func snapshotsFromTotals(totals []int) []types.Snapshot {
	snapshots := make([]types.Snapshot, len(totals))
	for i, total := range totals {
		snapshots[i] = types.Snapshot{
			FileTimestamp: 1000,
			Hour:          10,
			Minute:        i,
			Quad:          types.TokenQuad{Input: total},
		}
	}
	return snapshots
}

func amounts(deltas []types.UsageDelta) []int {
	out := make([]int, len(deltas))
	for i, d := range deltas {
		out[i] = d.Amount
	}
	return out
}

func TestReconstructMonotonicWatermark(t *testing.T) {
	// The 90 reading is a decrease: it contributes nothing and does not
	// lower the watermark, which stays at 250, so the following 300
	// emits 50.
	deltas := Reconstruct(snapshotsFromTotals([]int{100, 250, 250, 90, 300}))
	assert.Equal(t, []int{100, 150, 50}, amounts(deltas))
}

func TestReconstructStrictlyIncreasing(t *testing.T) {
	deltas := Reconstruct(snapshotsFromTotals([]int{10, 30, 60, 100}))
	assert.Equal(t, []int{10, 20, 30, 40}, amounts(deltas))

	sum := 0
	for _, d := range deltas {
		sum += d.Amount
	}
	assert.Equal(t, 100, sum, "delta sum must equal final cumulative total")
}

func TestReconstructDuplicateReadings(t *testing.T) {
	deltas := Reconstruct(snapshotsFromTotals([]int{50, 50, 50}))
	assert.Equal(t, []int{50}, amounts(deltas))
}

func TestReconstructEmptyAndZero(t *testing.T) {
	assert.Empty(t, Reconstruct(nil))
	assert.Empty(t, Reconstruct(snapshotsFromTotals([]int{0, 0})))
}

func TestReconstructHourAttribution(t *testing.T) {
	snapshots := []types.Snapshot{
		{FileTimestamp: 1, Hour: 9, Minute: 0, Quad: types.TokenQuad{Input: 100}},
		{FileTimestamp: 1, Hour: 14, Minute: 0, Quad: types.TokenQuad{Input: 175}},
	}

	deltas := Reconstruct(snapshots)
	require.Len(t, deltas, 2)
	assert.Equal(t, types.UsageDelta{Hour: 9, Amount: 100}, deltas[0])
	assert.Equal(t, types.UsageDelta{Hour: 14, Amount: 75}, deltas[1])
}

func TestSortFileTimestampBeforeClock(t *testing.T) {
	// The later file reports an earlier wall-clock time (next day); the
	// file timestamp must dominate the ordering.
	snapshots := []types.Snapshot{
		{FileTimestamp: 2000, Hour: 1, Minute: 0, Quad: types.TokenQuad{Input: 500}},
		{FileTimestamp: 1000, Hour: 23, Minute: 30, Quad: types.TokenQuad{Input: 200}},
		{FileTimestamp: 1000, Hour: 23, Minute: 5, Quad: types.TokenQuad{Input: 100}},
	}

	sorted := Sort(snapshots)
	assert.Equal(t, 5, sorted[0].Minute)
	assert.Equal(t, 30, sorted[1].Minute)
	assert.Equal(t, int64(2000), sorted[2].FileTimestamp)

	deltas := Reconstruct(snapshots)
	assert.Equal(t, []int{100, 100, 300}, amounts(deltas))
}

func TestReconstructDoesNotMutateInput(t *testing.T) {
	snapshots := []types.Snapshot{
		{FileTimestamp: 2, Quad: types.TokenQuad{Input: 10}},
		{FileTimestamp: 1, Quad: types.TokenQuad{Input: 5}},
	}

	_ = Reconstruct(snapshots)
	assert.Equal(t, int64(2), snapshots[0].FileTimestamp)
}
