// Package state reads the cumulative-usage state file the interactive
// assistant maintains (a single JSON object keyed by project path). It is
// the fallback token source when no structured records exist.
package state

import (
	"encoding/json"
	"os"

	"github.com/dmalson/claude-analytics/internal/types"
)

type stateFile struct {
	Projects map[string]projectState `json:"projects"`
}

type projectState struct {
	LastTotalInputTokens              *int  `json:"lastTotalInputTokens"`
	LastTotalOutputTokens             int   `json:"lastTotalOutputTokens"`
	LastTotalCacheCreationInputTokens int   `json:"lastTotalCacheCreationInputTokens"`
	LastTotalCacheReadInputTokens     int   `json:"lastTotalCacheReadInputTokens"`
	ExampleFilesGeneratedAt           int64 `json:"exampleFilesGeneratedAt"`
}

// LastKnownUsage returns the cumulative counters of the most recently
// updated project that carries token totals. A missing file is empty
// data: zero counters, no error.
func LastKnownUsage(path string) (types.TokenQuad, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.TokenQuad{}, nil
		}
		return types.TokenQuad{}, types.LoaderError{Path: path, Err: err}
	}

	var sf stateFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return types.TokenQuad{}, types.LoaderError{Path: path, Err: err}
	}

	var latest *projectState
	var latestTime int64
	for name := range sf.Projects {
		project := sf.Projects[name]
		if project.LastTotalInputTokens == nil {
			continue
		}
		if latest == nil || project.ExampleFilesGeneratedAt > latestTime {
			latestTime = project.ExampleFilesGeneratedAt
			latest = &project
		}
	}

	if latest == nil {
		return types.TokenQuad{}, nil
	}

	return types.TokenQuad{
		Input:         *latest.LastTotalInputTokens,
		Output:        latest.LastTotalOutputTokens,
		CacheCreation: latest.LastTotalCacheCreationInputTokens,
		CacheRead:     latest.LastTotalCacheReadInputTokens,
	}, nil
}
