package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmalson/claude-analytics/internal/calculator"
	"github.com/dmalson/claude-analytics/internal/output"
	"github.com/dmalson/claude-analytics/internal/sessionlog"
)

func NewTimelineCommand() *cobra.Command {
	var (
		sessionsDir string
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show the session timeline",
		Long:  `List terminal sessions with start, end and duration, sorted by start time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessionsDir == "" {
				sessionsDir = defaultSessionsDir()
			}

			sessions, err := sessionlog.LoadDir(sessionsDir)
			if err != nil {
				return fmt.Errorf("failed to load session logs: %w", err)
			}

			entries := calculator.BuildTimeline(sessions)
			formatter := output.NewFormatter(noColor)
			fmt.Print(formatter.FormatTimeline(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionsDir, "sessions-dir", "", "Path to the session logs directory")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
