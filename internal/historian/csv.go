package historian

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/techequipments/engine/internal/models"
)

// Appender receives parsed samples.
type Appender interface {
	Append(tag string, samples ...models.Sample) error
	Flush() error
}

// ProgressCallback is called periodically during ingest.
type ProgressCallback func(linesProcessed int, bytesProcessed int64)

// IngestError describes a rejected line.
type IngestError struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

// IngestStats summarizes one ingest run.
type IngestStats struct {
	Lines   int            `json:"lines"`
	Samples int            `json:"samples"`
	Tags    map[string]int `json:"tags"`
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Errors  []*IngestError `json:"errors,omitempty"`
}

// Format: "timestamp,tag,value[,quality]"
var csvLineRegex = regexp.MustCompile(`^\s*([^,]+?)\s*,\s*([^,]+?)\s*,\s*([^,]+?)\s*(?:,\s*([^,]*?)\s*)?$`)

// ParseTimestamp accepts "2006-01-02 15:04:05[.fff]" (UTC) and RFC 3339.
func ParseTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05.999999999", "2006-01-02T15:04:05.999999999"} {
		if t, err := time.ParseInLocation(layout, ts, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %s", ts)
}

// IngestCSV reads "timestamp,tag,value[,quality]" lines into dst. A header
// line and blank lines are skipped. Bad lines are reported in the stats.
func IngestCSV(r io.Reader, dst Appender, onProgress ProgressCallback) (*IngestStats, error) {
	stats := &IngestStats{Tags: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var bytesRead int64
	for scanner.Scan() {
		stats.Lines++
		line := scanner.Text()
		bytesRead += int64(len(line)) + 1

		if onProgress != nil && stats.Lines%10000 == 0 {
			onProgress(stats.Lines, bytesRead)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := csvLineRegex.FindStringSubmatch(line)
		if m == nil {
			stats.Errors = append(stats.Errors, &IngestError{Line: stats.Lines, Content: line, Reason: "line does not match CSV sample format"})
			continue
		}

		ts, err := ParseTimestamp(m[1])
		if err != nil {
			if stats.Lines == 1 && strings.EqualFold(strings.TrimSpace(m[1]), "timestamp") {
				continue
			}
			stats.Errors = append(stats.Errors, &IngestError{Line: stats.Lines, Content: line, Reason: "invalid timestamp"})
			continue
		}

		value, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			stats.Errors = append(stats.Errors, &IngestError{Line: stats.Lines, Content: line, Reason: "invalid value"})
			continue
		}

		tag := m[2]
		sample := models.Sample{Time: ts, Value: value, Quality: models.ParseQuality(m[4])}
		if err := dst.Append(tag, sample); err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}

		stats.Samples++
		stats.Tags[normalizeTag(tag)]++
		if stats.Start.IsZero() || ts.Before(stats.Start) {
			stats.Start = ts
		}
		if ts.After(stats.End) {
			stats.End = ts
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}
	if onProgress != nil {
		onProgress(stats.Lines, bytesRead)
	}
	return stats, dst.Flush()
}
