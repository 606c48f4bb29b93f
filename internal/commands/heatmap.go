package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmalson/claude-analytics/internal/calculator"
	"github.com/dmalson/claude-analytics/internal/delta"
	"github.com/dmalson/claude-analytics/internal/output"
	"github.com/dmalson/claude-analytics/internal/sessionlog"
)

func NewHeatmapCommand() *cobra.Command {
	var (
		sessionsDir string
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show hourly token usage pattern",
		Long: `Reconstruct per-interval usage from the cumulative snapshots in the
session logs and bucket it by hour of day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionsDir == "" {
				sessionsDir = defaultSessionsDir()
			}

			sessions, err := sessionlog.LoadDir(sessionsDir)
			if err != nil {
				return fmt.Errorf("failed to load session logs: %w", err)
			}

			deltas := delta.Reconstruct(sessionlog.AllSnapshots(sessions))
			hist := calculator.BuildHistogram(deltas)

			if hist.Total() == 0 {
				fmt.Println("No token snapshots found. Snapshots are written by the session logger on a timer.")
				return nil
			}

			formatter := output.NewFormatter(noColor)
			fmt.Print(formatter.FormatHeatmap(hist))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionsDir, "sessions-dir", "", "Path to the session logs directory")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
