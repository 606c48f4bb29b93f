package sessionlog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dmalson/claude-analytics/internal/types"
)

// Session-log snapshot blocks come in two encodings that coexist in the
// same directory: a single line carrying all four counters, and an older
// multi-line form where the last three counters are spread across up to
// twelve continuation lines.
var (
	singleLineRe = regexp.MustCompile(`\[(\d{2}):(\d{2})\].*Token snapshot.*Input:\s*(\d+).*Output:\s*(\d+).*Cache Creation:\s*(\d+).*Cache Read:\s*(\d+)`)
	multiStartRe = regexp.MustCompile(`\[(\d{2}):(\d{2})\].*Token snapshot.*Input:\s*(\d+)`)

	outputPairRe        = regexp.MustCompile(`(\d+),\s*Output:\s*(\d+)`)
	cacheCreationPairRe = regexp.MustCompile(`(\d+),\s*Cache Creation:\s*(\d+)`)
	cacheReadPairRe     = regexp.MustCompile(`(\d+),\s*Cache Read:\s*(\d+)`)
	bareNumberRe        = regexp.MustCompile(`^\s*(\d+)\s*$`)
	leadingNumberRe     = regexp.MustCompile(`^\s*(\d+)`)
)

// costCalcMarker ends a multi-line snapshot block early.
const costCalcMarker = "Cost calc"

// continuationWindow caps how many lines a multi-line snapshot may span
// past its anchor line.
const continuationWindow = 12

// scanState names the parser's position inside a multi-line snapshot.
type scanState int

const (
	expectOutputGroup scanState = iota
	expectCacheCreationGroup
	expectCacheReadGroup
	expectTail
)

// groupSize is the maximum number of continuation lines per counter group.
const groupSize = 3

// ParseSnapshots extracts every snapshot in the file's lines, in order.
// Lines matching neither encoding are inert. A truncated file simply ends
// the scan with whatever was reconstructed so far.
func ParseSnapshots(lines []string, fileTimestamp int64) []types.Snapshot {
	var snapshots []types.Snapshot

	for i, line := range lines {
		if m := singleLineRe.FindStringSubmatch(line); m != nil {
			snapshots = append(snapshots, types.Snapshot{
				FileTimestamp: fileTimestamp,
				Hour:          atoi(m[1]),
				Minute:        atoi(m[2]),
				Quad: types.TokenQuad{
					Input:         atoi(m[3]),
					Output:        atoi(m[4]),
					CacheCreation: atoi(m[5]),
					CacheRead:     atoi(m[6]),
				},
			})
			continue
		}

		if m := multiStartRe.FindStringSubmatch(line); m != nil {
			end := i + 1 + continuationWindow
			if end > len(lines) {
				end = len(lines)
			}
			snapshots = append(snapshots, types.Snapshot{
				FileTimestamp: fileTimestamp,
				Hour:          atoi(m[1]),
				Minute:        atoi(m[2]),
				Quad:          scanContinuation(lines[i+1:end], atoi(m[3])),
			})
		}
	}

	return snapshots
}

// scanContinuation reconstructs the remaining three counters from a
// multi-line snapshot body. Each counter group is up to three lines: a
// bare integer continues the previous field's partial total, while a
// "<n>, <Label>: <m>" pair both finishes the previous field (+n) and sets
// the authoritative value m for the group's own field.
func scanContinuation(lines []string, input int) types.TokenQuad {
	quad := types.TokenQuad{Input: input}
	state := expectOutputGroup
	linesInGroup := 0

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.Contains(line, costCalcMarker) {
			break
		}

		switch state {
		case expectOutputGroup:
			if m := outputPairRe.FindStringSubmatch(line); m != nil {
				quad.Input += atoi(m[1])
				quad.Output = atoi(m[2])
			} else if m := bareNumberRe.FindStringSubmatch(line); m != nil {
				quad.Input += atoi(m[1])
			}
		case expectCacheCreationGroup:
			if m := cacheCreationPairRe.FindStringSubmatch(line); m != nil {
				quad.Output += atoi(m[1])
				quad.CacheCreation = atoi(m[2])
			} else if m := bareNumberRe.FindStringSubmatch(line); m != nil {
				quad.Output += atoi(m[1])
			}
		case expectCacheReadGroup:
			if m := cacheReadPairRe.FindStringSubmatch(line); m != nil {
				quad.CacheCreation += atoi(m[1])
				quad.CacheRead = atoi(m[2])
			} else if m := bareNumberRe.FindStringSubmatch(line); m != nil {
				quad.CacheCreation += atoi(m[1])
			}
		case expectTail:
			if m := leadingNumberRe.FindStringSubmatch(line); m != nil {
				quad.CacheRead += atoi(m[1])
			}
		}

		linesInGroup++
		if linesInGroup == groupSize && state != expectTail {
			state++
			linesInGroup = 0
		}
	}

	return quad
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
