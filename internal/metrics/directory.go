package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/dray-io/daylog/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultDirectoryScanInterval is how often directory gauges are refreshed.
const DefaultDirectoryScanInterval = time.Minute

// DirectoryMetrics reports what is on disk in the log directory.
type DirectoryMetrics struct {
	// Files is the number of dated log files in the directory.
	Files prometheus.Gauge

	// Bytes is the total size of the dated log files.
	Bytes prometheus.Gauge
}

// NewDirectoryMetrics creates directory metrics registered with the default registry.
func NewDirectoryMetrics() *DirectoryMetrics {
	return newDirectoryMetrics(promauto.With(prometheus.DefaultRegisterer))
}

// NewDirectoryMetricsWithRegistry creates directory metrics registered with reg.
func NewDirectoryMetricsWithRegistry(reg prometheus.Registerer) *DirectoryMetrics {
	return newDirectoryMetrics(promauto.With(reg))
}

func newDirectoryMetrics(f promauto.Factory) *DirectoryMetrics {
	return &DirectoryMetrics{
		Files: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "directory",
			Name:      "files",
			Help:      "Number of dated log files in the log directory.",
		}),
		Bytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "directory",
			Name:      "bytes",
			Help:      "Total size of the dated log files in bytes.",
		}),
	}
}

// RecordDirectory sets the directory gauges.
func (m *DirectoryMetrics) RecordDirectory(files int, bytes int64) {
	if m == nil {
		return
	}
	m.Files.Set(float64(files))
	m.Bytes.Set(float64(bytes))
}

// DirStatsProvider reports the contents of a log directory.
type DirStatsProvider interface {
	DirStats(ctx context.Context) (files int, bytes int64, err error)
}

// DirectoryScanner periodically refreshes DirectoryMetrics.
type DirectoryScanner struct {
	metrics  *DirectoryMetrics
	provider DirStatsProvider
	interval time.Duration
	logger   *logging.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDirectoryScanner creates a scanner. A non-positive interval uses
// DefaultDirectoryScanInterval; a nil logger discards scan errors.
func NewDirectoryScanner(m *DirectoryMetrics, provider DirStatsProvider, interval time.Duration, logger *logging.Logger) *DirectoryScanner {
	if interval <= 0 {
		interval = DefaultDirectoryScanInterval
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &DirectoryScanner{
		metrics:  m,
		provider: provider,
		interval: interval,
		logger:   logger.Named("directory-scanner"),
		stopCh:   make(chan struct{}),
	}
}

// Start begins periodic scanning. The first scan runs immediately.
func (s *DirectoryScanner) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop halts scanning and waits for the loop to exit. Safe to call twice.
func (s *DirectoryScanner) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *DirectoryScanner) loop() {
	defer s.wg.Done()

	s.scanOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.scanOnce()
		}
	}
}

func (s *DirectoryScanner) scanOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	files, bytes, err := s.provider.DirStats(ctx)
	if err != nil {
		s.logger.Warnf("directory scan failed", map[string]any{"error": err.Error()})
		return
	}
	s.metrics.RecordDirectory(files, bytes)
}

// ScanOnce triggers a single scan and updates metrics.
func (s *DirectoryScanner) ScanOnce() {
	s.scanOnce()
}
