package types

import (
	"time"
)

// TokenQuad holds the four token counters tracked for every usage source.
type TokenQuad struct {
	Input         int `json:"input_tokens"`
	Output        int `json:"output_tokens"`
	CacheCreation int `json:"cache_creation_input_tokens"`
	CacheRead     int `json:"cache_read_input_tokens"`
}

// Total returns the sum of all four counters.
func (q TokenQuad) Total() int {
	return q.Input + q.Output + q.CacheCreation + q.CacheRead
}

// Add accumulates another quad into this one.
func (q *TokenQuad) Add(other TokenQuad) {
	q.Input += other.Input
	q.Output += other.Output
	q.CacheCreation += other.CacheCreation
	q.CacheRead += other.CacheRead
}

// Snapshot is one observation of cumulative token usage inside a session
// log. FileTimestamp comes from the epoch prefix of the log filename and
// orders snapshots across days; Hour/Minute come from the [HH:MM] stamp.
type Snapshot struct {
	FileTimestamp int64     `json:"file_timestamp"`
	Hour          int       `json:"hour"`
	Minute        int       `json:"minute"`
	Quad          TokenQuad `json:"quad"`
}

// UsageDelta is a reconstructed per-interval increment attributed to a
// single hour-of-day bucket.
type UsageDelta struct {
	Hour   int `json:"hour"`
	Amount int `json:"amount"`
}

// UsageRecord is one structured per-request entry, one per assistant reply.
type UsageRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Model      string    `json:"model"`
	CostUSD    float64   `json:"cost_usd"`
	DurationMs int64     `json:"duration_ms"`
	Usage      TokenQuad `json:"usage"`
	SessionID  string    `json:"session_id"`
	RequestID  string    `json:"request_id"`
	Project    string    `json:"project"`
}

// ModelStats accumulates usage for a single model.
type ModelStats struct {
	Count    int       `json:"count"`
	Cost     float64   `json:"cost"`
	Duration int64     `json:"duration"`
	Usage    TokenQuad `json:"usage"`
}

// ProjectStats accumulates usage for a single project directory.
type ProjectStats struct {
	Cost     float64   `json:"cost"`
	Duration int64     `json:"duration"`
	Requests int       `json:"requests"`
	Usage    TokenQuad `json:"usage"`
}

// AggregatedStats is the fold of all structured usage records.
type AggregatedStats struct {
	TotalCost     float64                 `json:"total_cost"`
	TotalDuration int64                   `json:"total_duration"`
	TotalRequests int                     `json:"total_requests"`
	Usage         TokenQuad               `json:"usage"`
	ByModel       map[string]ModelStats   `json:"by_model"`
	ByProject     map[string]ProjectStats `json:"by_project"`
}

// SessionTimelineEntry describes one terminal session's lifetime. End and
// Duration hold "ongoing" while no end marker has been observed.
type SessionTimelineEntry struct {
	ID       string `json:"id"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration string `json:"duration"`
}

// Ongoing is the sentinel value for sessions without an end marker.
const Ongoing = "ongoing"

// SourceKind labels which path produced a usage summary.
type SourceKind string

const (
	SourceStructured SourceKind = "structured"
	SourceFallback   SourceKind = "fallback"
)

// UsageSummary is the reconciler's unified result. Stats is non-nil only
// when the structured path was used.
type UsageSummary struct {
	TokenData TokenQuad          `json:"token_data"`
	Costs     map[string]float64 `json:"costs"`
	Source    SourceKind         `json:"source"`
	Stats     *AggregatedStats   `json:"stats,omitempty"`
}
