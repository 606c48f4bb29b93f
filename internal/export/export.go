// Package export renders per-session usage into CSV and JSON artifacts.
// Exports are derived views: each file is written once, whole, at the end
// of a run.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmalson/claude-analytics/internal/calculator"
	"github.com/dmalson/claude-analytics/internal/pricing"
	"github.com/dmalson/claude-analytics/internal/sessionlog"
	"github.com/dmalson/claude-analytics/internal/types"
)

// SessionRow is one exported session: timeline fields, the final
// cumulative counters and what those tokens would cost per model tier.
type SessionRow struct {
	SessionID           string  `json:"sessionId"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	Duration            string  `json:"duration"`
	TokenSnapshots      int     `json:"tokenSnapshots"`
	TotalTokens         int     `json:"totalTokens"`
	InputTokens         int     `json:"inputTokens"`
	OutputTokens        int     `json:"outputTokens"`
	CacheCreationTokens int     `json:"cacheCreationTokens"`
	CacheReadTokens     int     `json:"cacheReadTokens"`
	CostOpus            float64 `json:"costOpus"`
	CostSonnet          float64 `json:"costSonnet"`
	CostHaiku           float64 `json:"costHaiku"`
}

// Document is the JSON export with summary counts over the sessions.
type Document struct {
	ExportDate     string       `json:"exportDate"`
	TotalSessions  int          `json:"totalSessions"`
	ActiveSessions int          `json:"activeSessions"`
	Sessions       []SessionRow `json:"sessions"`
}

var csvHeader = []string{
	"Session ID", "Start Time", "End Time", "Duration", "Token Snapshots",
	"Total Tokens", "Input Tokens", "Output Tokens", "Cache Creation", "Cache Read",
	"Cost (Opus)", "Cost (Sonnet)", "Cost (Haiku)",
}

// BuildRows converts parsed sessions into export rows.
func BuildRows(sessions []sessionlog.Session, table *pricing.Table) []SessionRow {
	rows := make([]SessionRow, 0, len(sessions))

	for _, s := range sessions {
		quad := s.LastQuad()
		costs := table.Estimate(quad)

		row := SessionRow{
			SessionID:           s.ID,
			StartTime:           s.Start,
			EndTime:             types.Ongoing,
			Duration:            types.Ongoing,
			TokenSnapshots:      len(s.Snapshots),
			TotalTokens:         quad.Total(),
			InputTokens:         quad.Input,
			OutputTokens:        quad.Output,
			CacheCreationTokens: quad.CacheCreation,
			CacheReadTokens:     quad.CacheRead,
			CostOpus:            costs["claude-4-opus"],
			CostSonnet:          costs["claude-4-sonnet"],
			CostHaiku:           costs["claude-3.5-haiku"],
		}
		if row.StartTime == "" {
			row.StartTime = "N/A"
		}
		if s.End != "" {
			row.EndTime = s.End
			if s.Start != "" {
				row.Duration = calculator.FormatClockSpan(s.Start, s.End)
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// NewDocument wraps rows with export metadata and summary counts.
func NewDocument(rows []SessionRow, now time.Time) Document {
	active := 0
	for _, row := range rows {
		if row.EndTime == types.Ongoing {
			active++
		}
	}
	return Document{
		ExportDate:     now.UTC().Format(time.RFC3339),
		TotalSessions:  len(rows),
		ActiveSessions: active,
		Sessions:       rows,
	}
}

// WriteCSV writes the fixed-column CSV export.
func WriteCSV(path string, rows []SessionRow) error {
	var out strings.Builder
	writeCSVRow(&out, csvHeader)

	for _, row := range rows {
		writeCSVRow(&out, []string{
			row.SessionID,
			row.StartTime,
			row.EndTime,
			row.Duration,
			fmt.Sprintf("%d", row.TokenSnapshots),
			fmt.Sprintf("%d", row.TotalTokens),
			fmt.Sprintf("%d", row.InputTokens),
			fmt.Sprintf("%d", row.OutputTokens),
			fmt.Sprintf("%d", row.CacheCreationTokens),
			fmt.Sprintf("%d", row.CacheReadTokens),
			fmt.Sprintf("%.4f", row.CostOpus),
			fmt.Sprintf("%.4f", row.CostSonnet),
			fmt.Sprintf("%.4f", row.CostHaiku),
		})
	}

	return writeAtomic(path, []byte(out.String()))
}

// WriteJSON writes the JSON export document.
func WriteJSON(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, append(data, '\n'))
}

func writeCSVRow(out *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			out.WriteString(",")
		}
		out.WriteString("\"")
		out.WriteString(strings.ReplaceAll(cell, "\"", "\"\""))
		out.WriteString("\"")
	}
	out.WriteString("\n")
}

// writeAtomic writes the whole file via a temp file and rename so a
// partially written export is never observed.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
