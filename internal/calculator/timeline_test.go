package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmalson/claude-analytics/internal/sessionlog"
	"github.com/dmalson/claude-analytics/internal/types"
)

func TestBuildTimelineCompletedSession(t *testing.T) {
	sessions := []sessionlog.Session{
		{ID: "S1", Start: "09:00", End: "11:30"},
	}

	entries := BuildTimeline(sessions)
	require.Len(t, entries, 1)
	assert.Equal(t, types.SessionTimelineEntry{
		ID:       "S1",
		Start:    "09:00",
		End:      "11:30",
		Duration: "2h 30m",
	}, entries[0])
}

func TestBuildTimelineOngoingSession(t *testing.T) {
	entries := BuildTimeline([]sessionlog.Session{
		{ID: "S2", Start: "22:15"},
	})

	require.Len(t, entries, 1)
	assert.Equal(t, types.Ongoing, entries[0].End)
	assert.Equal(t, types.Ongoing, entries[0].Duration)
}

func TestBuildTimelineSortedByStart(t *testing.T) {
	entries := BuildTimeline([]sessionlog.Session{
		{ID: "late", Start: "18:00", End: "19:00"},
		{ID: "early", Start: "07:30", End: "08:00"},
		{ID: "unstarted"},
	})

	require.Len(t, entries, 2, "sessions without a start marker are omitted")
	assert.Equal(t, "early", entries[0].ID)
	assert.Equal(t, "late", entries[1].ID)
}

func TestFormatClockSpan(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{"09:00", "11:30", "2h 30m"},
		{"09:00", "09:45", "45m"},
		{"10:15", "10:15", "0m"},
		{"23:30", "01:00", "1h 30m"}, // next-day wrap
		{"12:00", "12:01", "1m"},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClockSpan(tt.start, tt.end))
		})
	}
}
