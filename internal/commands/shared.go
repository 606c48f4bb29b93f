package commands

import (
	"os"
	"path/filepath"
)

// defaultSessionsDir locates the free-text session logs written by the
// terminal wrapper. CLAUDE_LOGS_DIR overrides the default location.
func defaultSessionsDir() string {
	if logsDir := os.Getenv("CLAUDE_LOGS_DIR"); logsDir != "" {
		return filepath.Join(logsDir, "sessions")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, "Documents", "claude-logs", "sessions")
}

// defaultProjectsRoot locates the structured per-request record files,
// one subdirectory per project. CLAUDE_CONFIG_DIR overrides.
func defaultProjectsRoot() string {
	if configDir := os.Getenv("CLAUDE_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "projects")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".claude", "projects")
}

// defaultStatePath locates the cumulative-usage state file used as the
// fallback token source.
func defaultStatePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".claude.json"
	}
	return filepath.Join(homeDir, ".claude.json")
}
