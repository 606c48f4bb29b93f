package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmalson/claude-analytics/internal/commands"
)

func main() {
	ctx := context.Background()

	rootCmd := &cobra.Command{
		Use:   "claude-analytics",
		Short: "Claude Code usage analytics and insights",
		Long: `Aggregates token usage from per-terminal session logs and structured
per-request records into cost, heatmap and timeline reports.`,
	}

	rootCmd.AddCommand(
		commands.NewStatsCommand(),
		commands.NewHeatmapCommand(),
		commands.NewTimelineCommand(),
		commands.NewExportCommand(),
		commands.NewDashboardCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
