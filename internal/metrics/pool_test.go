package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func TestNewPoolMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPoolMetricsWithRegistry(reg)

	// Touch every metric so that it shows up in Gather.
	m.RecordAppend(10, 0.001)
	m.RecordAppendError()
	m.RecordHandleOpened(1)
	m.RecordHandlesClosed(1, 0)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	expected := map[string]bool{
		"daylog_pool_appends_total":          false,
		"daylog_pool_append_errors_total":    false,
		"daylog_pool_bytes_written_total":    false,
		"daylog_pool_open_handles":           false,
		"daylog_pool_handles_opened_total":   false,
		"daylog_pool_handles_closed_total":   false,
		"daylog_pool_append_latency_seconds": false,
	}
	for _, family := range families {
		if _, ok := expected[family.GetName()]; ok {
			expected[family.GetName()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected metric %s to be registered", name)
		}
	}
}

func TestPoolMetrics_RecordAppend(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPoolMetricsWithRegistry(reg)

	m.RecordAppend(6, 0.0001)
	m.RecordAppend(4, 0.0002)

	if v := getCounterValue(t, reg, "daylog_pool_appends_total"); v != 2 {
		t.Errorf("expected 2 appends, got %v", v)
	}
	if v := getCounterValue(t, reg, "daylog_pool_bytes_written_total"); v != 10 {
		t.Errorf("expected 10 bytes, got %v", v)
	}
	if c := getHistogramCount(t, reg, "daylog_pool_append_latency_seconds"); c != 2 {
		t.Errorf("expected 2 latency samples, got %d", c)
	}
}

func TestPoolMetrics_Handles(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPoolMetricsWithRegistry(reg)

	m.RecordHandleOpened(1)
	m.RecordHandleOpened(2)
	m.RecordHandleOpened(3)
	if v := getGaugeValue(t, reg, "daylog_pool_open_handles"); v != 3 {
		t.Errorf("expected 3 open handles, got %v", v)
	}

	m.RecordHandlesClosed(2, 1)
	if v := getGaugeValue(t, reg, "daylog_pool_open_handles"); v != 1 {
		t.Errorf("expected 1 open handle, got %v", v)
	}
	if v := getCounterValue(t, reg, "daylog_pool_handles_closed_total"); v != 2 {
		t.Errorf("expected 2 closed handles, got %v", v)
	}
	if v := getCounterValue(t, reg, "daylog_pool_handles_opened_total"); v != 3 {
		t.Errorf("expected 3 opened handles, got %v", v)
	}
}

func TestPoolMetrics_NilSafe(t *testing.T) {
	var m *PoolMetrics
	m.RecordAppend(1, 0)
	m.RecordAppendError()
	m.RecordHandleOpened(1)
	m.RecordHandlesClosed(1, 0)
}

func findMetric(t *testing.T, reg *prometheus.Registry, name string) *io_prometheus_client.Metric {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			if metrics := family.GetMetric(); len(metrics) > 0 {
				return metrics[0]
			}
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func getGaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	return findMetric(t, reg, name).GetGauge().GetValue()
}

func getCounterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	return findMetric(t, reg, name).GetCounter().GetValue()
}

func getHistogramCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	return findMetric(t, reg, name).GetHistogram().GetSampleCount()
}
