// Package daylog writes labeled text records into one file per calendar date
// and optionally deletes files older than a retention threshold.
//
//	l, err := daylog.New(daylog.Options{Directory: "logs", DeleteOlderThan: 30 * 24 * time.Hour})
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//	l.Info("service started")
//
// Records go to <Directory>/YYYY-MM-DD.log as
// "<timestamp> <LABEL> <padding><content>".
package daylog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dray-io/daylog/internal/clock"
	"github.com/dray-io/daylog/internal/config"
	"github.com/dray-io/daylog/internal/dated"
	"github.com/dray-io/daylog/internal/gc"
	"github.com/dray-io/daylog/internal/line"
	"github.com/dray-io/daylog/internal/logging"
	"github.com/dray-io/daylog/internal/metrics"
)

// DefaultDirectory is used when Options.Directory is empty. It is relative
// to the working directory.
const DefaultDirectory = "logs"

// Labels used by the level helpers.
const (
	LabelDebug = "DEBUG"
	LabelInfo  = "INFO"
	LabelWarn  = "WARN"
	LabelError = "ERROR"
	LabelFatal = "FATAL"
)

var (
	// ErrClosed is returned by every logging call after Close.
	ErrClosed = errors.New("daylog: logger is closed")

	// ErrNilContent is returned when content is nil.
	ErrNilContent = errors.New("daylog: content is nil")

	// ErrEmptyLabel is returned when a label is blank after trimming.
	ErrEmptyLabel = errors.New("daylog: label is empty")
)

// Options configures a Logger.
type Options struct {
	// Directory receives the dated files. A relative path resolves against
	// the working directory at New, not the executable's directory.
	// Default: DefaultDirectory.
	Directory string

	// UseUTC selects UTC for timestamps and file dates instead of local time.
	UseUTC bool

	// DeleteOlderThan is the retention threshold. Zero disables retention.
	DeleteOlderThan time.Duration

	// DateTimeFormat is a Go time layout for the line timestamp.
	// Default: line.DefaultDateTimeFormat.
	DateTimeFormat string

	// EnabledLabels restricts output to these labels. Other labels are
	// dropped silently. Empty allows all.
	EnabledLabels []string

	// HandleSweepInterval is how often handles of past dates are closed.
	// Default: dated.DefaultSweepInterval.
	HandleSweepInterval time.Duration

	// Sync forces an fsync after every record.
	Sync bool

	// Clock overrides the time source selected by UseUTC.
	Clock clock.Clock

	// Metrics is optional.
	Metrics *metrics.Set

	// Logger receives operational diagnostics such as delete failures.
	// Optional.
	Logger *logging.Logger
}

// OptionsFromConfig maps the log section of cfg onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Directory:           cfg.Log.Directory,
		UseUTC:              cfg.Log.UseUTC,
		DeleteOlderThan:     cfg.Log.DeleteOlderThan,
		DateTimeFormat:      cfg.Log.DateTimeFormat,
		EnabledLabels:       cfg.Log.EnabledLabels,
		HandleSweepInterval: cfg.Log.HandleSweepInterval,
		Sync:                cfg.Log.Sync,
	}
}

// Logger is a dated file logger. It is safe for concurrent use.
type Logger struct {
	clock   clock.Clock
	format  *line.Formatter
	pool    *dated.Pool
	cleaner *gc.RetentionCleaner
	scanner *metrics.DirectoryScanner

	mu     sync.RWMutex
	closed bool
}

// New creates a Logger and starts its background sweeps.
func New(opts Options) (*Logger, error) {
	if opts.DeleteOlderThan < 0 {
		return nil, fmt.Errorf("daylog: DeleteOlderThan must not be negative, got %s", opts.DeleteOlderThan)
	}
	if opts.Directory == "" {
		opts.Directory = DefaultDirectory
	}
	if opts.Clock == nil {
		opts.Clock = clock.For(opts.UseUTC)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	pool, err := dated.NewPool(opts.Directory, dated.PoolConfig{
		SweepInterval: opts.HandleSweepInterval,
		Clock:         opts.Clock,
		Sync:          opts.Sync,
		Metrics:       opts.Metrics.PoolMetrics(),
		Logger:        opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("daylog: %w", err)
	}

	l := &Logger{
		clock: opts.Clock,
		format: line.New(line.Options{
			DateTimeFormat: opts.DateTimeFormat,
			EnabledLabels:  opts.EnabledLabels,
		}),
		pool: pool,
	}

	if opts.DeleteOlderThan > 0 {
		l.cleaner = gc.NewRetentionCleaner(pool.Dir(), pool, gc.RetentionCleanerConfig{
			Threshold: opts.DeleteOlderThan,
			Clock:     opts.Clock,
			Metrics:   opts.Metrics.RetentionMetrics(),
			Logger:    opts.Logger,
		})
		l.cleaner.Start()
	}

	if dm := opts.Metrics.DirectoryMetrics(); dm != nil {
		l.scanner = metrics.NewDirectoryScanner(dm, pool, 0, opts.Logger)
		l.scanner.Start()
	}

	return l, nil
}

// NewFromConfig creates a Logger from configuration. m and logger may be nil.
func NewFromConfig(cfg *config.Config, m *metrics.Set, logger *logging.Logger) (*Logger, error) {
	opts := OptionsFromConfig(cfg)
	opts.Metrics = m
	opts.Logger = logger
	return New(opts)
}

// Directory returns the absolute directory the logger writes into.
func (l *Logger) Directory() string {
	return l.pool.Dir()
}

// Log writes content under label. A label outside the enabled set is
// ignored and returns nil.
func (l *Logger) Log(label string, content any) error {
	return l.write(label, func() (string, error) {
		if content == nil {
			return "", ErrNilContent
		}
		return fmt.Sprint(content), nil
	})
}

// Logf writes a formatted record under label.
func (l *Logger) Logf(label, format string, args ...any) error {
	return l.write(label, func() (string, error) {
		return fmt.Sprintf(format, args...), nil
	})
}

// Debug logs content with the DEBUG label.
func (l *Logger) Debug(content any) error { return l.Log(LabelDebug, content) }

// Info logs content with the INFO label.
func (l *Logger) Info(content any) error { return l.Log(LabelInfo, content) }

// Warn logs content with the WARN label.
func (l *Logger) Warn(content any) error { return l.Log(LabelWarn, content) }

// Error logs content with the ERROR label.
func (l *Logger) Error(content any) error { return l.Log(LabelError, content) }

// Fatal logs content with the FATAL label. It does not exit the process.
func (l *Logger) Fatal(content any) error { return l.Log(LabelFatal, content) }

// write renders content only once the logger is known to be open and the
// label is valid.
func (l *Logger) write(label string, render func() (string, error)) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}
	if line.NormalizeLabel(label) == "" {
		return ErrEmptyLabel
	}
	content, err := render()
	if err != nil {
		return err
	}

	ts := l.clock.Now()
	text, ok := l.format.Format(ts, label, content)
	if !ok {
		return nil
	}
	if err := l.pool.Append(ts, text); err != nil {
		return fmt.Errorf("daylog: %w", err)
	}
	return nil
}

// Close closes every open file, then stops the retention cleaner and the
// directory scanner. Calls in flight finish first. Later calls return
// ErrClosed; a second Close is a no-op.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	err := l.pool.Close()
	if l.cleaner != nil {
		l.cleaner.Stop()
	}
	if l.scanner != nil {
		l.scanner.Stop()
	}
	if err != nil {
		return fmt.Errorf("daylog: %w", err)
	}
	return nil
}
