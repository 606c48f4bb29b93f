package calculator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmalson/claude-analytics/internal/sessionlog"
	"github.com/dmalson/claude-analytics/internal/types"
)

// BuildTimeline turns parsed sessions into timeline entries sorted by
// start time. Sessions without a start marker are omitted; sessions
// without an end marker stay ongoing indefinitely.
func BuildTimeline(sessions []sessionlog.Session) []types.SessionTimelineEntry {
	var entries []types.SessionTimelineEntry

	for _, s := range sessions {
		if s.Start == "" {
			continue
		}
		entry := types.SessionTimelineEntry{
			ID:       s.ID,
			Start:    s.Start,
			End:      types.Ongoing,
			Duration: types.Ongoing,
		}
		if s.End != "" {
			entry.End = s.End
			entry.Duration = FormatClockSpan(s.Start, s.End)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start < entries[j].Start
	})

	return entries
}

// FormatClockSpan renders the minutes between two HH:MM stamps as
// "Xh Ym" or "Ym". An end before the start is assumed to be a next-day
// wrap and gains a full day.
func FormatClockSpan(start, end string) string {
	minutes := clockMinutes(end) - clockMinutes(start)
	if minutes < 0 {
		minutes += 24 * 60
	}

	hours := minutes / 60
	minutes = minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func clockMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return hour*60 + minute
}
