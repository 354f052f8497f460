package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	recomputeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_analytics",
		Name:      "recompute_total",
		Help:      "Analytics view models computed from scratch, by metric.",
	}, []string{"metric"})
	cacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_analytics",
		Name:      "cache_hits_total",
		Help:      "Analytics requests served from the memo cache, by metric.",
	}, []string{"metric"})
	computeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_analytics",
		Name:      "compute_duration_seconds",
		Help:      "Time spent loading records and computing a view model.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"metric"})
	skippedRecordsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_analytics",
		Name:      "skipped_records_total",
		Help:      "Workout records dropped because their timestamp could not be normalized.",
	})
	exportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_analytics",
		Name:      "exports_total",
		Help:      "Analytics export attempts, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(recomputeTotal, cacheHitsTotal, computeDuration, skippedRecordsTotal, exportsTotal)
}

// RecordRecompute counts a cache miss and observes how long it took.
func RecordRecompute(metric string, took time.Duration) {
	recomputeTotal.WithLabelValues(metric).Inc()
	computeDuration.WithLabelValues(metric).Observe(took.Seconds())
}

func RecordCacheHit(metric string) {
	cacheHitsTotal.WithLabelValues(metric).Inc()
}

// RecordSkipped adds malformed records seen during a computation.
func RecordSkipped(n int) {
	if n <= 0 {
		return
	}
	skippedRecordsTotal.Add(float64(n))
}

// RecordExport counts an export by outcome ("success" or "failure").
func RecordExport(outcome string) {
	exportsTotal.WithLabelValues(outcome).Inc()
}
