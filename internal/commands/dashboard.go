package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmalson/claude-analytics/internal/monitor"
)

func NewDashboardCommand() *cobra.Command {
	var (
		projectsRoot string
		statePath    string
		interval     int
		noColor      bool
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the usage dashboard",
		Long: `Show the reconciled usage summary once, or keep it refreshed in a
full-screen view with --watch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectsRoot == "" {
				projectsRoot = defaultProjectsRoot()
			}
			if statePath == "" {
				statePath = defaultStatePath()
			}

			m := monitor.New(monitor.Options{
				ProjectsRoot: projectsRoot,
				StatePath:    statePath,
				Interval:     time.Duration(interval) * time.Second,
				NoColor:      noColor,
				Watch:        watch,
			})

			if err := m.Start(cmd.Context()); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectsRoot, "projects-root", "", "Path to the structured records directory")
	cmd.Flags().StringVar(&statePath, "state-file", "", "Path to the cumulative-usage state file")
	cmd.Flags().IntVarP(&interval, "interval", "i", 5, "Refresh interval in seconds (watch mode)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing in a full-screen view")

	return cmd
}
