package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmalson/claude-analytics/internal/export"
	"github.com/dmalson/claude-analytics/internal/pricing"
	"github.com/dmalson/claude-analytics/internal/sessionlog"
)

func NewExportCommand() *cobra.Command {
	var (
		sessionsDir string
		format      string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session analytics to CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return fmt.Errorf("unsupported format %q, use csv or json", format)
			}

			if sessionsDir == "" {
				sessionsDir = defaultSessionsDir()
			}

			sessions, err := sessionlog.LoadDir(sessionsDir)
			if err != nil {
				return fmt.Errorf("failed to load session logs: %w", err)
			}

			rows := export.BuildRows(sessions, pricing.Default())

			now := time.Now()
			if outputPath == "" {
				stamp := now.UTC().Format("2006-01-02T15-04-05Z")
				outputPath = filepath.Join(".", fmt.Sprintf("claude-analytics-export-%s.%s", stamp, format))
			}

			switch format {
			case "json":
				err = export.WriteJSON(outputPath, export.NewDocument(rows, now))
			default:
				err = export.WriteCSV(outputPath, rows)
			}
			if err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Printf("%s export saved: %s (%d sessions)\n", strings.ToUpper(format), outputPath, len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionsDir, "sessions-dir", "", "Path to the session logs directory")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format (csv, json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (defaults to a timestamped name)")

	return cmd
}
