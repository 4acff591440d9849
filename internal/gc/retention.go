package gc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dray-io/daylog/internal/clock"
	"github.com/dray-io/daylog/internal/logging"
	"github.com/dray-io/daylog/internal/metrics"
)

// OpenPathsProvider reports the absolute paths of files that must not be
// deleted because they are currently held open.
type OpenPathsProvider interface {
	OpenPaths() []string
}

// CreationTimeFunc returns the instant a file was created.
type CreationTimeFunc func(path string, info fs.FileInfo) time.Time

// RetentionCleanerConfig configures the retention cleaner.
type RetentionCleanerConfig struct {
	// Threshold is the age at which a file becomes eligible for deletion.
	Threshold time.Duration

	// Interval is the period between sweeps.
	// Default: SweepInterval(Threshold)
	Interval time.Duration

	// Clock supplies "now" for age computation. Default: local time.
	Clock clock.Clock

	// CreationTime supplies file ages. Default: FileCreationTime.
	CreationTime CreationTimeFunc

	// Metrics is optional.
	Metrics *metrics.RetentionMetrics

	// Logger receives sweep summaries and per-file delete failures. Optional.
	Logger *logging.Logger
}

// SweepResult summarizes one retention sweep.
type SweepResult struct {
	// Scanned is the number of regular files found in the directory.
	Scanned int
	// Skipped is the number of files left alone because they were open.
	Skipped int
	// Deleted is the number of files removed.
	Deleted int
	// Failed is the number of eligible files that could not be removed.
	Failed int
	// DeletedBytes is the total size of the removed files.
	DeletedBytes int64
}

// RetentionCleaner deletes log files older than a threshold, skipping files
// the pool holds open.
type RetentionCleaner struct {
	dir          string
	pool         OpenPathsProvider
	threshold    time.Duration
	interval     time.Duration
	clock        clock.Clock
	creationTime CreationTimeFunc
	metrics      *metrics.RetentionMetrics
	logger       *logging.Logger

	// removeFile is os.Remove outside of tests.
	removeFile func(string) error

	sweepMu sync.Mutex

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewRetentionCleaner creates a cleaner for dir. pool may be nil, in which
// case no file is treated as open.
func NewRetentionCleaner(dir string, pool OpenPathsProvider, cfg RetentionCleanerConfig) *RetentionCleaner {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	if cfg.Interval <= 0 {
		cfg.Interval = SweepInterval(cfg.Threshold)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Local()
	}
	if cfg.CreationTime == nil {
		cfg.CreationTime = FileCreationTime
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	return &RetentionCleaner{
		dir:          dir,
		pool:         pool,
		threshold:    cfg.Threshold,
		interval:     cfg.Interval,
		clock:        cfg.Clock,
		creationTime: cfg.CreationTime,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger.Named("retention").With(map[string]any{"dir": dir}),
		removeFile:   os.Remove,
	}
}

// Interval returns the period between sweeps.
func (c *RetentionCleaner) Interval() time.Duration {
	return c.interval
}

// Threshold returns the retention threshold.
func (c *RetentionCleaner) Threshold() time.Duration {
	return c.threshold
}

// Start begins the background loop. The first sweep runs immediately.
func (c *RetentionCleaner) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	c.mu.Unlock()

	go c.run()
}

// Stop stops the background loop and waits for an in-flight sweep to finish.
// No final sweep is performed.
func (c *RetentionCleaner) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	close(c.stopCh)
	c.mu.Unlock()

	<-c.doneCh

	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

// run is the main loop.
func (c *RetentionCleaner) run() {
	defer close(c.doneCh)

	ctx, cancel := context.WithCancel(logging.WithLoggerCtx(context.Background(), c.logger))
	defer cancel()
	go func() {
		select {
		case <-c.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.sweepAndLog(ctx)

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.sweepAndLog(ctx)
		}
	}
}

func (c *RetentionCleaner) sweepAndLog(ctx context.Context) {
	result, err := c.Sweep(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warnf("retention sweep failed", map[string]any{"error": err.Error()})
		return
	}
	if result.Deleted > 0 || result.Failed > 0 {
		c.logger.Infof("retention sweep completed", map[string]any{
			"scanned":      result.Scanned,
			"skipped":      result.Skipped,
			"deleted":      result.Deleted,
			"failed":       result.Failed,
			"deletedBytes": result.DeletedBytes,
		})
	}
}

// Sweep runs one retention pass synchronously. Sweeps never overlap; a call
// made while another sweep is running waits for it. A missing directory is
// not an error. Per-file delete failures are logged and counted, not returned.
func (c *RetentionCleaner) Sweep(ctx context.Context) (*SweepResult, error) {
	c.sweepMu.Lock()
	defer c.sweepMu.Unlock()

	start := time.Now()
	result := &SweepResult{}
	defer func() {
		c.metrics.RecordSweep(result.Deleted, result.Failed, result.Skipped, result.DeletedBytes,
			time.Since(start).Seconds())
	}()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("read log directory %s: %w", c.dir, err)
	}

	open := make(map[string]struct{})
	if c.pool != nil {
		for _, p := range c.pool.OpenPaths() {
			open[filepath.Clean(p)] = struct{}{}
		}
	}

	now := c.clock.Now()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(c.dir, entry.Name())
		result.Scanned++

		if _, ok := open[path]; ok {
			result.Skipped++
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed by someone else since ReadDir.
			continue
		}

		if now.Sub(c.creationTime(path, info)) < c.threshold {
			continue
		}

		if err := c.removeFile(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			result.Failed++
			c.logger.Warnf("failed to delete expired log file", map[string]any{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}

		result.Deleted++
		result.DeletedBytes += info.Size()
		c.logger.Debugf("deleted expired log file", map[string]any{
			"file": entry.Name(),
			"size": info.Size(),
		})
	}

	return result, nil
}
