package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PoolMetrics holds metrics for the dated stream pool.
type PoolMetrics struct {
	// AppendsTotal counts successful appends.
	AppendsTotal prometheus.Counter

	// AppendErrorsTotal counts appends that failed to open, write or flush.
	AppendErrorsTotal prometheus.Counter

	// BytesWrittenTotal counts bytes written, including line terminators.
	BytesWrittenTotal prometheus.Counter

	// OpenHandles tracks the number of dated files currently held open.
	OpenHandles prometheus.Gauge

	// HandlesOpenedTotal counts lazily opened handles.
	HandlesOpenedTotal prometheus.Counter

	// HandlesClosedTotal counts handles closed by the daily sweep or shutdown.
	HandlesClosedTotal prometheus.Counter

	// AppendLatencyHistogram tracks write+flush latency in seconds.
	AppendLatencyHistogram prometheus.Histogram
}

// DefaultAppendLatencyBuckets covers a page-cache write up to a slow fsync.
var DefaultAppendLatencyBuckets = []float64{
	0.00001, // 10us
	0.00005, // 50us
	0.0001,  // 100us
	0.0005,  // 500us
	0.001,   // 1ms
	0.005,   // 5ms
	0.01,    // 10ms
	0.05,    // 50ms
	0.1,     // 100ms
	0.5,     // 500ms
	1.0,     // 1s
}

// NewPoolMetrics creates pool metrics registered with the default registry.
func NewPoolMetrics() *PoolMetrics {
	return newPoolMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewPoolMetricsWithRegistry creates pool metrics registered with reg.
// Useful for testing to avoid conflicts with the default registry.
func NewPoolMetricsWithRegistry(reg prometheus.Registerer) *PoolMetrics {
	return newPoolMetrics(promauto.With(reg))
}

func newPoolMetrics(f promauto.Factory) *PoolMetrics {
	return &PoolMetrics{
		AppendsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pool",
			Name:      "appends_total",
			Help:      "Total number of lines appended to dated log files.",
		}),
		AppendErrorsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pool",
			Name:      "append_errors_total",
			Help:      "Total number of appends that failed with an I/O error.",
		}),
		BytesWrittenTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pool",
			Name:      "bytes_written_total",
			Help:      "Total number of bytes written to dated log files.",
		}),
		OpenHandles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "pool",
			Name:      "open_handles",
			Help:      "Number of dated log files currently held open.",
		}),
		HandlesOpenedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pool",
			Name:      "handles_opened_total",
			Help:      "Total number of dated log files opened.",
		}),
		HandlesClosedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pool",
			Name:      "handles_closed_total",
			Help:      "Total number of dated log files closed by sweep or shutdown.",
		}),
		AppendLatencyHistogram: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "pool",
			Name:      "append_latency_seconds",
			Help:      "Latency of a single write and flush in seconds.",
			Buckets:   DefaultAppendLatencyBuckets,
		}),
	}
}

// RecordAppend records a successful append of n bytes.
func (m *PoolMetrics) RecordAppend(n int, durationSeconds float64) {
	if m == nil {
		return
	}
	m.AppendsTotal.Inc()
	m.BytesWrittenTotal.Add(float64(n))
	m.AppendLatencyHistogram.Observe(durationSeconds)
}

// RecordAppendError records a failed append.
func (m *PoolMetrics) RecordAppendError() {
	if m == nil {
		return
	}
	m.AppendErrorsTotal.Inc()
}

// RecordHandleOpened records a newly opened handle and the resulting count.
func (m *PoolMetrics) RecordHandleOpened(open int) {
	if m == nil {
		return
	}
	m.HandlesOpenedTotal.Inc()
	m.OpenHandles.Set(float64(open))
}

// RecordHandlesClosed records closed handles and the resulting count.
func (m *PoolMetrics) RecordHandlesClosed(closed, open int) {
	if m == nil {
		return
	}
	if closed > 0 {
		m.HandlesClosedTotal.Add(float64(closed))
	}
	m.OpenHandles.Set(float64(open))
}
