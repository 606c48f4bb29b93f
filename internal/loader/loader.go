package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmalson/claude-analytics/internal/types"
)

// Loader reads structured per-request usage records from newline-delimited
// JSON files, one subdirectory per project under the projects root.
type Loader struct {
	maxWorkers int
	debug      bool
}

func New() *Loader {
	return &Loader{
		maxWorkers: 10,
	}
}

func (l *Loader) SetDebug(debug bool) {
	l.debug = debug
}

// rawLine mirrors the wire format of one structured log line. Only
// assistant replies carrying a usage object become records; user turns,
// tool-call lines and malformed JSON are skipped by design.
type rawLine struct {
	Type       string  `json:"type"`
	Timestamp  string  `json:"timestamp"`
	SessionID  string  `json:"sessionId"`
	RequestID  string  `json:"requestId"`
	CostUSD    float64 `json:"costUSD"`
	DurationMs int64   `json:"durationMs"`
	Message    *struct {
		ID    string `json:"id"`
		Model string `json:"model"`
		Usage *struct {
			InputTokens              int `json:"input_tokens"`
			OutputTokens             int `json:"output_tokens"`
			CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
			CacheReadInputTokens     int `json:"cache_read_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

type fileJob struct {
	path    string
	project string
}

// LoadFromRoot loads every project's records under root. A missing root is
// empty data, not an error. Per-file read failures are reported to stderr
// and that file contributes nothing; the rest still count.
func (l *Loader) LoadFromRoot(ctx context.Context, root string) ([]types.UsageRecord, error) {
	jobs, err := l.findRecordFiles(root)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	if l.debug {
		fmt.Fprintf(os.Stderr, "Debug: found %d record files under %s\n", len(jobs), root)
	}

	return l.loadParallel(ctx, jobs)
}

func (l *Loader) findRecordFiles(root string) ([]fileJob, error) {
	projects, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, types.LoaderError{Path: root, Err: err}
	}

	var jobs []fileJob
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}
		projectDir := filepath.Join(root, project.Name())
		err := filepath.Walk(projectDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // skip inaccessible entries, keep walking
			}
			if !info.IsDir() && strings.HasSuffix(strings.ToLower(path), ".jsonl") {
				jobs = append(jobs, fileJob{path: path, project: project.Name()})
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping project %s: %v\n", project.Name(), err)
		}
	}

	return jobs, nil
}

func (l *Loader) loadParallel(ctx context.Context, jobs []fileJob) ([]types.UsageRecord, error) {
	type result struct {
		records []types.UsageRecord
		err     error
	}

	jobCh := make(chan fileJob, len(jobs))
	results := make(chan result, len(jobs))

	// Request-level dedupe shared across all files.
	var dedupeMu sync.Mutex
	seen := make(map[string]bool)

	workers := l.maxWorkers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
					records, err := l.loadFile(job, &dedupeMu, seen)
					results <- result{records: records, err: err}
				}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobCh <- job:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []types.UsageRecord
	for res := range results {
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", res.err)
			continue
		}
		all = append(all, res.records...)
	}

	return all, nil
}

func (l *Loader) loadFile(job fileJob, dedupeMu *sync.Mutex, seen map[string]bool) ([]types.UsageRecord, error) {
	file, err := os.Open(job.path)
	if err != nil {
		return nil, types.LoaderError{Path: job.path, Err: err}
	}
	defer file.Close()

	var records []types.UsageRecord
	scanner := bufio.NewScanner(file)

	// Single lines can carry whole tool outputs, so allow up to 1MB.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawLine
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue // malformed JSON is skipped, not an error
		}

		if raw.Type != "assistant" || raw.Message == nil || raw.Message.Usage == nil {
			continue
		}

		if hash := uniqueHash(raw); hash != "" {
			dedupeMu.Lock()
			dup := seen[hash]
			if !dup {
				seen[hash] = true
			}
			dedupeMu.Unlock()
			if dup {
				continue
			}
		}

		records = append(records, types.UsageRecord{
			Timestamp:  parseTimestamp(raw.Timestamp),
			Model:      raw.Message.Model,
			CostUSD:    raw.CostUSD,
			DurationMs: raw.DurationMs,
			Usage: types.TokenQuad{
				Input:         raw.Message.Usage.InputTokens,
				Output:        raw.Message.Usage.OutputTokens,
				CacheCreation: raw.Message.Usage.CacheCreationInputTokens,
				CacheRead:     raw.Message.Usage.CacheReadInputTokens,
			},
			SessionID: raw.SessionID,
			RequestID: raw.RequestID,
			Project:   job.project,
		})
	}

	if err := scanner.Err(); err != nil {
		return records, types.LoaderError{Path: job.path, Err: err}
	}

	return records, nil
}

// uniqueHash builds the dedupe key from message id and request id; either
// missing means the line cannot be deduped and is kept as-is.
func uniqueHash(raw rawLine) string {
	if raw.Message == nil || raw.Message.ID == "" || raw.RequestID == "" {
		return ""
	}
	return raw.Message.ID + ":" + raw.RequestID
}

func parseTimestamp(ts string) time.Time {
	for _, format := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(format, ts); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
