package trend

import (
	"sort"
	"strings"
	"time"

	"github.com/techequipments/engine/internal/models"
)

type pointKey struct {
	series string
	at     int64
}

func keyOf(p models.TrendPoint) pointKey {
	return pointKey{series: strings.ToUpper(strings.TrimSpace(p.Series)), at: p.Time.UnixNano()}
}

// MergePoints merges a backfilled chunk into the buffer.
// Points are unique by (series, time); on a clash the existing point wins.
// The result is ordered by time, then series name ignoring case.
func MergePoints(existing, incoming []models.TrendPoint) []models.TrendPoint {
	merged := make([]models.TrendPoint, 0, len(existing)+len(incoming))
	seen := make(map[pointKey]struct{}, len(existing)+len(incoming))

	for _, src := range [][]models.TrendPoint{existing, incoming} {
		for _, p := range src {
			k := keyOf(p)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, p)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		return strings.ToLower(a.Series) < strings.ToLower(b.Series)
	})
	return merged
}

// AppendNewer appends the points of batch that are strictly newer than the
// latest buffered point of the same series.
func AppendNewer(points, batch []models.TrendPoint, series string) []models.TrendPoint {
	var latest time.Time
	for _, p := range points {
		if strings.EqualFold(p.Series, series) && p.Time.After(latest) {
			latest = p.Time
		}
	}
	for _, p := range batch {
		if p.Time.After(latest) {
			points = append(points, p)
		}
	}
	return points
}

// Extent returns the oldest and newest point times.
func Extent(points []models.TrendPoint) (oldest, newest time.Time, ok bool) {
	if len(points) == 0 {
		return time.Time{}, time.Time{}, false
	}
	oldest, newest = points[0].Time, points[0].Time
	for _, p := range points[1:] {
		if p.Time.Before(oldest) {
			oldest = p.Time
		}
		if p.Time.After(newest) {
			newest = p.Time
		}
	}
	return oldest, newest, true
}

// EvictBefore drops points older than cutoff, reusing the slice.
func EvictBefore(points []models.TrendPoint, cutoff time.Time) []models.TrendPoint {
	kept := points[:0]
	for _, p := range points {
		if !p.Time.Before(cutoff) {
			kept = append(kept, p)
		}
	}
	return kept
}
