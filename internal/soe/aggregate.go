package soe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/techequipments/engine/internal/metrics"
	"github.com/techequipments/engine/internal/models"
)

// Options bounds an aggregated extraction.
type Options struct {
	PerEquipmentCap int    `json:"perEquipmentCap"` // max records from one equipment
	TotalCap        int    `json:"totalCap"`        // max records overall
	Item            string `json:"item"`            // trend item holding the status word
	RefCategory     string `json:"refCategory"`     // reference category followed from the main equipment
}

// DefaultOptions returns the caps used by the SOE view.
func DefaultOptions() Options {
	return Options{
		PerEquipmentCap: 2000,
		TotalCap:        10000,
		Item:            "STW",
		RefCategory:     "TabDIDO",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PerEquipmentCap <= 0 {
		o.PerEquipmentCap = d.PerEquipmentCap
	}
	if o.TotalCap <= 0 {
		o.TotalCap = d.TotalCap
	}
	if o.Item == "" {
		o.Item = d.Item
	}
	if o.RefCategory == "" {
		o.RefCategory = d.RefCategory
	}
	return o
}

// ProgressFunc receives loading progress during Extract.
type ProgressFunc func(models.LoadingProgress)

// Extract builds the SOE of an equipment and the equipment it references.
// Records are returned newest first. Cancellation is returned as ctx.Err().
func (x *Extractor) Extract(ctx context.Context, name string, opts Options, progress ProgressFunc) (*models.SoeResult, error) {
	started := time.Now()
	result, err := x.extract(ctx, name, opts.withDefaults(), progress)

	elapsed := time.Since(started)
	metrics.SoeExtractionDuration.Observe(elapsed.Seconds())
	switch {
	case err == nil:
		metrics.SoeExtractionsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		metrics.SoeRecordsTotal.Add(float64(len(result.Records)))
		result.ElapsedMs = elapsed.Milliseconds()
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		metrics.SoeExtractionsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
	default:
		metrics.SoeExtractionsTotal.WithLabelValues(metrics.OutcomeError).Inc()
	}
	return result, err
}

func (x *Extractor) extract(ctx context.Context, name string, opts Options, progress ProgressFunc) (*models.SoeResult, error) {
	if x.dir == nil {
		return nil, fmt.Errorf("no equipment directory configured")
	}

	targets, err := x.collectTargets(ctx, name, opts)
	if err != nil {
		return nil, err
	}

	result := &models.SoeResult{
		Equipment: name,
		Records:   []models.EventRecord{},
		Trends:    make([]string, 0, len(targets)),
	}

	total := 0
	for i, ref := range targets {
		if total >= opts.TotalCap {
			result.Truncated = true
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		remaining := opts.TotalCap - total
		if remaining > opts.PerEquipmentCap {
			remaining = opts.PerEquipmentCap
		}

		p := models.LoadingProgress{
			TotalTrends:       len(targets),
			CurrentTrendIndex: i + 1,
			CurrentTrendName:  ref.Name,
			TotalLoaded:       total,
		}
		report(progress, p)

		recs, bad, err := x.ExtractEquipment(ctx, ref, remaining, func(n int) {
			p.CurrentTrendCount = n
			p.TotalLoaded = total + n
			report(progress, p)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("extract %s: %w", ref.Name, err)
		}
		if bad {
			result.StoppedOnBad = append(result.StoppedOnBad, ref.Name)
			metrics.SoeStoppedOnBadTotal.Inc()
		}

		result.Trends = append(result.Trends, ref.TrendTag)
		result.Records = append(result.Records, recs...)
		total += len(recs)
	}
	if total >= opts.TotalCap {
		result.Truncated = true
	}

	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].TimeUtc.After(result.Records[j].TimeUtc)
	})
	return result, nil
}

// collectTargets returns the main equipment followed by its references,
// unique by trend tag.
func (x *Extractor) collectTargets(ctx context.Context, name string, opts Options) ([]models.EquipmentRef, error) {
	main, err := x.dir.Equipment(ctx, name, opts.Item)
	if err != nil {
		return nil, fmt.Errorf("lookup equipment %s: %w", name, err)
	}

	refNames, err := x.dir.References(ctx, name, opts.RefCategory)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		fmt.Printf("[SOE] references of %s unavailable: %v\n", name, err)
		refNames = nil
	}

	candidates := []models.EquipmentRef{main}
	seenNames := map[string]struct{}{strings.ToUpper(strings.TrimSpace(main.Name)): {}}
	for _, rn := range refNames {
		rn = strings.TrimSpace(rn)
		if rn == "" || strings.EqualFold(rn, "Unknown") {
			continue
		}
		key := strings.ToUpper(rn)
		if _, dup := seenNames[key]; dup {
			continue
		}
		seenNames[key] = struct{}{}

		ref, err := x.dir.Equipment(ctx, rn, opts.Item)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			fmt.Printf("[SOE] skipping reference %s: %v\n", rn, err)
			continue
		}
		candidates = append(candidates, ref)
	}

	targets := make([]models.EquipmentRef, 0, len(candidates))
	seenTags := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		tag := strings.ToUpper(strings.TrimSpace(c.TrendTag))
		if tag == "" {
			continue
		}
		if _, dup := seenTags[tag]; dup {
			continue
		}
		seenTags[tag] = struct{}{}
		targets = append(targets, c)
	}
	return targets, nil
}

func report(progress ProgressFunc, p models.LoadingProgress) {
	if progress != nil {
		progress(p)
	}
}
