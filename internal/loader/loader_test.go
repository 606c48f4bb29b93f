package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, root, project, name, content string) {
	t.Helper()
	dir := filepath.Join(root, project)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const assistantLine = `{"type":"assistant","timestamp":"2025-06-01T09:30:00Z","sessionId":"s1","requestId":"req-1","costUSD":0.25,"durationMs":1200,"message":{"id":"msg-1","model":"claude-sonnet-4-20250514","usage":{"input_tokens":100,"output_tokens":50,"cache_creation_input_tokens":10,"cache_read_input_tokens":2000}}}`

func TestLoadFromRootMissingDirectory(t *testing.T) {
	records, err := New().LoadFromRoot(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadFromRootParsesAssistantRecords(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "proj-a", "chat.jsonl", assistantLine+"\n")

	records, err := New().LoadFromRoot(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "claude-sonnet-4-20250514", rec.Model)
	assert.Equal(t, 0.25, rec.CostUSD)
	assert.Equal(t, int64(1200), rec.DurationMs)
	assert.Equal(t, 100, rec.Usage.Input)
	assert.Equal(t, 50, rec.Usage.Output)
	assert.Equal(t, 10, rec.Usage.CacheCreation)
	assert.Equal(t, 2000, rec.Usage.CacheRead)
	assert.Equal(t, "s1", rec.SessionID)
	assert.Equal(t, "req-1", rec.RequestID)
	assert.Equal(t, "proj-a", rec.Project)
	assert.Equal(t, 2025, rec.Timestamp.Year())
}

func TestLoadFromRootMixedValidInvalidLines(t *testing.T) {
	root := t.TempDir()
	content := `{"type":"assistant","timestamp":"2025-06-01T09:00:00Z","requestId":"r1","message":{"id":"m1","model":"claude-sonnet-4","usage":{"input_tokens":1,"output_tokens":1}}}
not json at all
{"type":"assistant","timestamp":"2025-06-01T09:01:00Z","requestId":"r2","message":{"id":"m2","model":"claude-sonnet-4","usage":{"input_tokens":2,"output_tokens":2}}}
{"broken":
{"type":"assistant","timestamp":"2025-06-01T09:02:00Z","requestId":"r3","message":{"id":"m3","model":"claude-sonnet-4","usage":{"input_tokens":3,"output_tokens":3}}}
`
	writeProjectFile(t, root, "proj", "mixed.jsonl", content)

	records, err := New().LoadFromRoot(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadFromRootFiltersNonAssistantLines(t *testing.T) {
	root := t.TempDir()
	content := `{"type":"user","timestamp":"2025-06-01T09:00:00Z","message":{"role":"user"}}
{"type":"assistant","timestamp":"2025-06-01T09:00:05Z","requestId":"r1","message":{"id":"m1","model":"claude-opus-4","usage":{"input_tokens":5,"output_tokens":5}}}
{"type":"assistant","timestamp":"2025-06-01T09:00:06Z","requestId":"r2","message":{"id":"m2","model":"claude-opus-4"}}
{"type":"summary","summary":"compacted"}
`
	writeProjectFile(t, root, "proj", "chat.jsonl", content)

	records, err := New().LoadFromRoot(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 1, "only assistant lines with a usage object count")
	assert.Equal(t, "claude-opus-4", records[0].Model)
}

func TestLoadFromRootMissingNumericFieldsDefaultZero(t *testing.T) {
	root := t.TempDir()
	content := `{"type":"assistant","timestamp":"2025-06-01T09:00:00Z","requestId":"r1","message":{"id":"m1","model":"claude-haiku-4-5","usage":{"input_tokens":7}}}
`
	writeProjectFile(t, root, "proj", "chat.jsonl", content)

	records, err := New().LoadFromRoot(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 7, rec.Usage.Input)
	assert.Zero(t, rec.Usage.Output)
	assert.Zero(t, rec.Usage.CacheCreation)
	assert.Zero(t, rec.Usage.CacheRead)
	assert.Zero(t, rec.CostUSD)
	assert.Zero(t, rec.DurationMs)
}

func TestLoadFromRootDedupesAcrossFiles(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "proj", "a.jsonl", assistantLine+"\n")
	writeProjectFile(t, root, "proj", "b.jsonl", assistantLine+"\n")

	records, err := New().LoadFromRoot(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, records, 1, "the same message/request pair counts once")
}

func TestLoadFromRootMultipleProjects(t *testing.T) {
	root := t.TempDir()
	content := `{"type":"assistant","timestamp":"2025-06-01T09:00:00Z","requestId":"r1","message":{"id":"m1","model":"claude-sonnet-4","usage":{"input_tokens":1,"output_tokens":0}}}
`
	writeProjectFile(t, root, "alpha", "a.jsonl", content)
	contentB := `{"type":"assistant","timestamp":"2025-06-01T10:00:00Z","requestId":"r2","message":{"id":"m2","model":"claude-sonnet-4","usage":{"input_tokens":2,"output_tokens":0}}}
`
	writeProjectFile(t, root, "beta", "b.jsonl", contentB)

	records, err := New().LoadFromRoot(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, records, 2)

	projects := map[string]bool{}
	for _, rec := range records {
		projects[rec.Project] = true
	}
	assert.True(t, projects["alpha"])
	assert.True(t, projects["beta"])
}
