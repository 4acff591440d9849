package metrics

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewServer(t *testing.T) {
	s := NewServer(":0")
	if s.Addr() != ":0" {
		t.Errorf("Addr() = %q, want %q before Start", s.Addr(), ":0")
	}
}

func TestServer_CloseBeforeStart(t *testing.T) {
	s := NewServer(":0")
	if err := s.Close(); err != nil {
		t.Errorf("Close before Start returned %v", err)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPoolMetricsWithRegistry(reg)
	m.RecordAppend(12, 0.0005)

	s := NewServerWithRegistry("127.0.0.1:0", reg)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Close()

	resp, err := http.Get("http://" + s.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "daylog_pool_appends_total 1") {
		t.Errorf("expected appends counter in output, got:\n%s", body)
	}
}
