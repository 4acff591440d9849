package dated

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dray-io/daylog/internal/clock"
	"github.com/dray-io/daylog/internal/logging"
	"github.com/dray-io/daylog/internal/metrics"
)

// DefaultSweepInterval is how often past-date handles are closed.
const DefaultSweepInterval = 2 * time.Hour

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// ErrPoolClosed is returned by Append after Close.
var ErrPoolClosed = errors.New("dated: pool is closed")

// PoolConfig configures a Pool.
type PoolConfig struct {
	// SweepInterval is the period of the past-date sweep.
	// Default: 2 hours.
	SweepInterval time.Duration

	// Clock decides which date is today. Default: local time.
	Clock clock.Clock

	// Sync forces an fsync after every append. Writes always reach the OS
	// before Append returns; Sync additionally waits for stable storage.
	Sync bool

	// Metrics is optional.
	Metrics *metrics.PoolMetrics

	// Logger receives close errors from the sweep. Optional.
	Logger *logging.Logger
}

// Pool owns one append handle per calendar date.
type Pool struct {
	dir     string
	clock   clock.Clock
	sync    bool
	metrics *metrics.PoolMetrics
	logger  *logging.Logger

	mu     sync.Mutex
	files  map[Date]*os.File
	closed bool

	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewPool creates a pool rooted at dir and starts its periodic sweep. The
// directory itself is created on the first append, not here.
func NewPool(dir string, cfg PoolConfig) (*Pool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve log directory %q: %w", dir, err)
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Local()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	p := &Pool{
		dir:      abs,
		clock:    cfg.Clock,
		sync:     cfg.Sync,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger.Named("pool").With(map[string]any{"dir": abs}),
		files:    make(map[Date]*os.File),
		interval: cfg.SweepInterval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// Dir returns the absolute directory the pool writes into.
func (p *Pool) Dir() string {
	return p.dir
}

// Append writes line plus a newline to the file for ts's date and flushes it.
// Errors opening the directory or file, or writing to it, are returned to the
// caller. A handle that failed a write stays open and is retried next time.
func (p *Pool) Append(ts time.Time, line string) error {
	date := DateOf(ts)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	f, err := p.handle(date)
	if err != nil {
		p.metrics.RecordAppendError()
		return err
	}

	data := make([]byte, 0, len(line)+len(newline))
	data = append(data, strings.ToValidUTF8(line, "\uFFFD")...)
	data = append(data, newline...)

	start := time.Now()
	if _, err := f.Write(data); err != nil {
		p.metrics.RecordAppendError()
		return err
	}
	if p.sync {
		if err := f.Sync(); err != nil {
			p.metrics.RecordAppendError()
			return err
		}
	}
	p.metrics.RecordAppend(len(data), time.Since(start).Seconds())
	return nil
}

// handle returns the open file for date, opening it if needed.
// Caller must hold p.mu.
func (p *Pool) handle(date Date) (*os.File, error) {
	if f, ok := p.files[date]; ok {
		return f, nil
	}

	if err := os.MkdirAll(p.dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", p.dir, err)
	}

	path := filepath.Join(p.dir, date.FileName())
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, filePerm)
	if err != nil {
		return nil, err
	}

	p.files[date] = f
	p.metrics.RecordHandleOpened(len(p.files))
	return f, nil
}

// OpenPaths returns the sorted absolute paths of every open handle.
func (p *Pool) OpenPaths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	paths := make([]string, 0, len(p.files))
	for _, f := range p.files {
		paths = append(paths, f.Name())
	}
	sort.Strings(paths)
	return paths
}

// OpenCount returns the number of open handles.
func (p *Pool) OpenCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.files)
}

// SweepPastDates closes every handle whose date is strictly before today and
// returns how many were closed.
func (p *Pool) SweepPastDates() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	today := DateOf(p.clock.Now())
	closed := 0
	for date, f := range p.files {
		if !date.Before(today) {
			continue
		}
		if err := f.Close(); err != nil {
			p.logger.Warnf("failed to close past-date handle", map[string]any{
				"date":  date.String(),
				"error": err.Error(),
			})
		}
		delete(p.files, date)
		closed++
	}

	if closed > 0 {
		p.logger.Debugf("closed past-date handles", map[string]any{
			"closed": closed,
			"today":  today.String(),
		})
	}
	p.metrics.RecordHandlesClosed(closed, len(p.files))
	return closed
}

// Close stops the periodic sweep, waits for it to exit and closes every
// handle regardless of date. Calls after the first return nil.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.stopCh)
	p.mu.Unlock()

	<-p.doneCh

	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.files)
	var errs []error
	for date, f := range p.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(p.files, date)
	}
	p.metrics.RecordHandlesClosed(n, 0)
	return errors.Join(errs...)
}

// run is the periodic sweep loop. The map is empty at construction, so the
// first sweep waits for the first tick.
func (p *Pool) run() {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.SweepPastDates()
		}
	}
}
