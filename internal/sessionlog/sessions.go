package sessionlog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmalson/claude-analytics/internal/types"
)

var (
	clockRe      = regexp.MustCompile(`\[(\d{2}:\d{2})\]`)
	filePrefixRe = regexp.MustCompile(`^(\d+)-`)
)

const (
	startedMarker = "session started"
	endedMarker   = "session ended"
)

// Session holds everything extracted from one session-log file.
type Session struct {
	ID            string
	FileTimestamp int64
	Start         string // HH:MM, empty until a start marker is seen
	End           string // HH:MM, empty while the session is ongoing
	Snapshots     []types.Snapshot
}

// LastQuad returns the final cumulative counters observed in the session,
// zero if the log held no snapshots.
func (s Session) LastQuad() types.TokenQuad {
	if len(s.Snapshots) == 0 {
		return types.TokenQuad{}
	}
	return s.Snapshots[len(s.Snapshots)-1].Quad
}

// ParseFileTimestamp reads the epoch-seconds prefix that session filenames
// carry (e.g. "1748667300-74660.log"). The prefix disambiguates days when
// different files report the same wall-clock time.
func ParseFileTimestamp(name string) (int64, bool) {
	m := filePrefixRe.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, false
	}
	ts, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// Parse builds a Session from a log file's name and full contents.
func Parse(name, content string) Session {
	id := strings.TrimSuffix(filepath.Base(name), ".log")
	ts, _ := ParseFileTimestamp(name)

	lines := strings.Split(content, "\n")
	session := Session{
		ID:            id,
		FileTimestamp: ts,
		Snapshots:     ParseSnapshots(lines, ts),
	}

	for _, line := range lines {
		m := clockRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch {
		case strings.Contains(line, startedMarker):
			session.Start = m[1]
		case strings.Contains(line, endedMarker):
			session.End = m[1]
		}
	}

	return session
}

// LoadDir parses every .log file in dir. A missing directory yields no
// sessions and no error; an unreadable file is reported on stderr and
// skipped so the remaining files still contribute.
func LoadDir(dir string) ([]Session, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, types.LoaderError{Path: dir, Err: err}
	}

	var sessions []Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping unreadable session log %s: %v\n", path, err)
			continue
		}
		sessions = append(sessions, Parse(entry.Name(), string(content)))
	}

	return sessions, nil
}

// AllSnapshots flattens the snapshot streams of many sessions.
func AllSnapshots(sessions []Session) []types.Snapshot {
	var snapshots []types.Snapshot
	for _, s := range sessions {
		snapshots = append(snapshots, s.Snapshots...)
	}
	return snapshots
}
