package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dmalson/claude-analytics/internal/calculator"
	"github.com/dmalson/claude-analytics/internal/types"
)

// Formatter renders reports for the terminal. Everything here is a thin
// presentation layer over the aggregation engine.
type Formatter struct {
	noColor bool
}

func NewFormatter(noColor bool) *Formatter {
	return &Formatter{noColor: noColor}
}

func (f *Formatter) headerStyle() lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if !f.noColor {
		style = style.Foreground(lipgloss.Color("205"))
	}
	return style
}

func (f *Formatter) newTable(buf *bytes.Buffer) *tablewriter.Table {
	return tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignRight},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
}

// FormatSummary renders the reconciled usage summary. The source label
// tells the reader whether costs are actual (structured records) or
// estimated from cumulative counters.
func (f *Formatter) FormatSummary(summary types.UsageSummary) string {
	var out strings.Builder

	out.WriteString(f.headerStyle().Render("Usage Summary"))
	out.WriteString("\n\n")

	label := "estimated (session counters)"
	if summary.Source == types.SourceStructured {
		label = "actual (structured records)"
	}
	out.WriteString(fmt.Sprintf("Source: %s\n\n", label))

	quad := summary.TokenData
	out.WriteString(fmt.Sprintf("Input tokens:          %s\n", formatNumber(quad.Input)))
	out.WriteString(fmt.Sprintf("Output tokens:         %s\n", formatNumber(quad.Output)))
	out.WriteString(fmt.Sprintf("Cache creation tokens: %s\n", formatNumber(quad.CacheCreation)))
	out.WriteString(fmt.Sprintf("Cache read tokens:     %s\n", formatNumber(quad.CacheRead)))
	out.WriteString(fmt.Sprintf("Total tokens:          %s\n", formatNumber(quad.Total())))

	out.WriteString("\nAPI cost comparison:\n")
	var models []string
	for model := range summary.Costs {
		models = append(models, model)
	}
	sort.Strings(models)
	for _, model := range models {
		out.WriteString(fmt.Sprintf("  %-18s $%.2f\n", model, summary.Costs[model]))
	}

	if summary.Stats != nil {
		out.WriteString("\n")
		out.WriteString(f.formatModelTable(summary.Stats))
	}

	return out.String()
}

func (f *Formatter) formatModelTable(stats *types.AggregatedStats) string {
	var buf bytes.Buffer
	table := f.newTable(&buf)

	table.Header([]string{
		"Model\n",
		"Requests\n",
		"Input\n",
		"Output\n",
		"Cache\nCreate",
		"Cache\nRead",
		"Cost\n(USD)",
	})

	var models []string
	for model := range stats.ByModel {
		models = append(models, model)
	}
	sort.Strings(models)

	for _, model := range models {
		m := stats.ByModel[model]
		table.Append([]string{
			model,
			formatNumber(m.Count),
			formatNumber(m.Usage.Input),
			formatNumber(m.Usage.Output),
			formatNumber(m.Usage.CacheCreation),
			formatNumber(m.Usage.CacheRead),
			fmt.Sprintf("$%.4f", m.Cost),
		})
	}

	table.Footer([]string{
		"Total",
		formatNumber(stats.TotalRequests),
		formatNumber(stats.Usage.Input),
		formatNumber(stats.Usage.Output),
		formatNumber(stats.Usage.CacheCreation),
		formatNumber(stats.Usage.CacheRead),
		fmt.Sprintf("$%.4f", stats.TotalCost),
	})

	table.Render()
	return buf.String()
}

// FormatHeatmap renders the hour-of-day histogram with period rollups.
func (f *Formatter) FormatHeatmap(hist calculator.HourHistogram) string {
	var out strings.Builder

	out.WriteString(f.headerStyle().Render("Hourly Token Usage Pattern"))
	out.WriteString("\n\n")

	max := hist[hist.PeakHour()]
	for hour := 0; hour < 24; hour++ {
		usage := hist[hour]
		width := 0
		if max > 0 {
			width = usage * 20 / max
		}
		bar := strings.Repeat("█", width) + strings.Repeat("░", 20-width)
		out.WriteString(fmt.Sprintf("%02d:00 │%s│ %s tokens\n", hour, bar, formatNumber(usage)))
	}

	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("Peak hour: %02d:00 (%s tokens)\n", hist.PeakHour(), formatNumber(max)))
	if quiet := hist.QuietestActiveHour(); quiet >= 0 {
		out.WriteString(fmt.Sprintf("Quietest hour: %02d:00\n", quiet))
	}

	out.WriteString("\nTime period analysis:\n")
	out.WriteString(fmt.Sprintf("Morning   (06-12): %s tokens\n", formatNumber(hist.Morning())))
	out.WriteString(fmt.Sprintf("Afternoon (12-18): %s tokens\n", formatNumber(hist.Afternoon())))
	out.WriteString(fmt.Sprintf("Evening   (18-24): %s tokens\n", formatNumber(hist.Evening())))
	out.WriteString(fmt.Sprintf("Night     (00-06): %s tokens\n", formatNumber(hist.Night())))

	return out.String()
}

// FormatTimeline renders the session timeline table plus summary counts.
func (f *Formatter) FormatTimeline(entries []types.SessionTimelineEntry) string {
	var out strings.Builder

	out.WriteString(f.headerStyle().Render("Session Timeline"))
	out.WriteString("\n\n")

	if len(entries) == 0 {
		out.WriteString("No sessions found.\n")
		return out.String()
	}

	var buf bytes.Buffer
	table := f.newTable(&buf)
	table.Header([]string{"Session", "Start", "End", "Duration"})

	active := 0
	for _, entry := range entries {
		if entry.End == types.Ongoing {
			active++
		}
		table.Append([]string{entry.ID, entry.Start, entry.End, entry.Duration})
	}
	table.Render()

	out.WriteString(buf.String())
	out.WriteString(fmt.Sprintf("\nTotal sessions: %d  Active: %d  Completed: %d\n",
		len(entries), active, len(entries)-active))

	return out.String()
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
