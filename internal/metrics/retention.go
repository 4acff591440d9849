package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RetentionMetrics holds metrics for the retention cleaner.
type RetentionMetrics struct {
	// SweepsTotal counts completed retention sweeps.
	SweepsTotal prometheus.Counter

	// FilesDeletedTotal counts files removed for exceeding the threshold.
	FilesDeletedTotal prometheus.Counter

	// DeleteErrorsTotal counts files that were eligible but could not be removed.
	DeleteErrorsTotal prometheus.Counter

	// BytesDeletedTotal counts bytes reclaimed by deletions.
	BytesDeletedTotal prometheus.Counter

	// FilesSkippedOpenTotal counts files left alone because the pool held them open.
	FilesSkippedOpenTotal prometheus.Counter

	// SweepDurationHistogram tracks sweep duration in seconds.
	SweepDurationHistogram prometheus.Histogram
}

// DefaultSweepDurationBuckets covers small directories up to very large ones.
var DefaultSweepDurationBuckets = []float64{
	0.0001, // 100us
	0.001,  // 1ms
	0.01,   // 10ms
	0.1,    // 100ms
	0.5,    // 500ms
	1.0,    // 1s
	5.0,    // 5s
	30.0,   // 30s
}

// NewRetentionMetrics creates retention metrics registered with the default registry.
func NewRetentionMetrics() *RetentionMetrics {
	return newRetentionMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewRetentionMetricsWithRegistry creates retention metrics registered with reg.
// Useful for testing to avoid conflicts with the default registry.
func NewRetentionMetricsWithRegistry(reg prometheus.Registerer) *RetentionMetrics {
	return newRetentionMetrics(promauto.With(reg))
}

func newRetentionMetrics(f promauto.Factory) *RetentionMetrics {
	return &RetentionMetrics{
		SweepsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "retention",
			Name:      "sweeps_total",
			Help:      "Total number of retention sweeps run.",
		}),
		FilesDeletedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "retention",
			Name:      "files_deleted_total",
			Help:      "Total number of log files deleted for exceeding the retention threshold.",
		}),
		DeleteErrorsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "retention",
			Name:      "delete_errors_total",
			Help:      "Total number of eligible log files that could not be deleted.",
		}),
		BytesDeletedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "retention",
			Name:      "bytes_deleted_total",
			Help:      "Total number of bytes reclaimed by retention deletes.",
		}),
		FilesSkippedOpenTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "retention",
			Name:      "files_skipped_open_total",
			Help:      "Total number of files skipped because the pool held them open.",
		}),
		SweepDurationHistogram: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "retention",
			Name:      "sweep_duration_seconds",
			Help:      "Duration of a retention sweep in seconds.",
			Buckets:   DefaultSweepDurationBuckets,
		}),
	}
}

// RecordSweep records the outcome of one sweep.
func (m *RetentionMetrics) RecordSweep(deleted, failed, skipped int, deletedBytes int64, durationSeconds float64) {
	if m == nil {
		return
	}
	m.SweepsTotal.Inc()
	m.FilesDeletedTotal.Add(float64(deleted))
	m.DeleteErrorsTotal.Add(float64(failed))
	m.FilesSkippedOpenTotal.Add(float64(skipped))
	m.BytesDeletedTotal.Add(float64(deletedBytes))
	m.SweepDurationHistogram.Observe(durationSeconds)
}
