package soe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/techequipments/engine/internal/models"
)

// DefaultWindow is the span of one backward fetch.
const DefaultWindow = 60 * time.Minute

// SampleSource reads raw samples of a trend tag. Samples are expected oldest first.
type SampleSource interface {
	FetchSamples(ctx context.Context, tag string, from, to time.Time) ([]models.Sample, error)
}

// Directory looks up equipment and the equipment it references.
type Directory interface {
	Equipment(ctx context.Context, name, item string) (models.EquipmentRef, error)
	References(ctx context.Context, name, category string) ([]string, error)
}

// Extractor walks status-word trends backwards and emits event records.
type Extractor struct {
	source SampleSource
	dir    Directory
	now    func() time.Time
	loc    *time.Location
	window time.Duration
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(x *Extractor) { x.now = now }
}

// WithLocation sets the plant time zone used for the day boundary.
func WithLocation(loc *time.Location) Option {
	return func(x *Extractor) {
		if loc != nil {
			x.loc = loc
		}
	}
}

// WithWindow overrides the fetch window span.
func WithWindow(d time.Duration) Option {
	return func(x *Extractor) {
		if d > 0 {
			x.window = d
		}
	}
}

// NewExtractor creates an extractor over a sample source and an equipment directory.
func NewExtractor(source SampleSource, dir Directory, opts ...Option) *Extractor {
	x := &Extractor{
		source: source,
		dir:    dir,
		now:    time.Now,
		loc:    time.Local,
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// DayStart returns local midnight of the day containing t, in UTC.
func DayStart(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc).UTC()
}

// ExtractEquipment walks one equipment's status word from now back to local
// midnight. It returns at most maxRows records in detection order.
// stoppedOnBad is true when a Bad sample ended the walk early; the records
// found before it are still returned.
func (x *Extractor) ExtractEquipment(ctx context.Context, ref models.EquipmentRef, maxRows int, onCount func(n int)) (records []models.EventRecord, stoppedOnBad bool, err error) {
	if maxRows <= 0 || strings.TrimSpace(ref.TrendTag) == "" {
		return nil, false, nil
	}

	group := ResolveGroup(ref.Type)
	now := x.now()
	dayStart := DayStart(now, x.loc)
	end := now.UTC()

	var last int64
	haveBaseline := false

	for len(records) < maxRows && end.After(dayStart) {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		start := end.Add(-x.window)
		if start.Before(dayStart) {
			start = dayStart
		}

		samples, err := x.source.FetchSamples(ctx, ref.TrendTag, start, end)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, false, ctxErr
			}
			return records, false, fmt.Errorf("fetch %s: %w", ref.TrendTag, err)
		}

		for _, s := range samples {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}
			if s.Quality == models.QualityBad {
				return records, true, nil
			}
			if s.Time.Before(dayStart) {
				continue
			}

			word := ToWord(s.Value)
			if !haveBaseline {
				last = word
				haveBaseline = true
				continue
			}
			if word == last {
				continue
			}

			code := ChangedBitCode(uint16(last&0xFFFF), uint16(word&0xFFFF))
			records = append(records, models.EventRecord{
				TimeUtc:      s.Time.UTC(),
				TypeGroup:    group,
				Equipment:    ref.Name,
				TrnValue:     s.Value,
				BitCode:      code,
				Event:        globalRegistry.Description(group, code),
				EventKey:     globalRegistry.Key(group, code),
				ValueQuality: s.Quality,
			})
			last = word

			if onCount != nil {
				onCount(len(records))
			}
			if len(records) >= maxRows {
				break
			}
		}

		end = start.Add(-time.Millisecond)
	}

	return records, false, nil
}
