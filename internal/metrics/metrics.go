// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeCancelled = "cancelled"
)

// Metrics definitions
var (
	SoeExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_soe_extractions_total",
		Help: "Total number of aggregated SOE extractions by outcome.",
	}, []string{"outcome"})

	SoeRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_soe_records_total",
		Help: "Total number of SOE event records produced.",
	})

	SoeStoppedOnBadTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_soe_stopped_on_bad_total",
		Help: "Total number of equipment walks ended by a Bad quality sample.",
	})

	SoeExtractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_soe_extraction_seconds",
		Help:    "Time spent on one aggregated SOE extraction.",
		Buckets: prometheus.DefBuckets,
	})

	TrendPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_trend_polls_total",
		Help: "Total number of trend poll cycles by outcome.",
	}, []string{"outcome"})

	TrendBackfillsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_trend_backfills_total",
		Help: "Total number of history chunks loaded by trend backfill.",
	})

	TrendSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "engine_trend_sessions_active",
		Help: "Current number of open trend sessions.",
	})

	HistorianSamplesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_historian_samples_appended_total",
		Help: "Total number of samples written to the historian.",
	})

	CatalogReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_catalog_reloads_total",
		Help: "Total number of equipment catalog reloads by outcome.",
	}, []string{"outcome"})
)
