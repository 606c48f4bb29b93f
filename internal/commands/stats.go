package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmalson/claude-analytics/internal/output"
	"github.com/dmalson/claude-analytics/internal/reconciler"
)

func NewStatsCommand() *cobra.Command {
	var (
		projectsRoot string
		statePath    string
		noColor      bool
		debug        bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reconciled token usage and cost estimates",
		Long: `Show the unified usage summary. Structured per-request records are
preferred when present; otherwise the last-known cumulative counters from
the session-state file are used and costs are estimates.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectsRoot == "" {
				projectsRoot = defaultProjectsRoot()
			}
			if statePath == "" {
				statePath = defaultStatePath()
			}

			rec := reconciler.New(reconciler.Options{
				ProjectsRoot: projectsRoot,
				StatePath:    statePath,
				Debug:        debug,
			})
			summary := rec.GetUsage(cmd.Context())

			formatter := output.NewFormatter(noColor)
			fmt.Print(formatter.FormatSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectsRoot, "projects-root", "", "Path to the structured records directory")
	cmd.Flags().StringVar(&statePath, "state-file", "", "Path to the cumulative-usage state file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&debug, "debug", false, "Show debug information")

	return cmd
}
