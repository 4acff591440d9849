// Package logging provides the structured operational logger used by daylog's
// own components to report sweeps, delete failures and lifecycle events.
// It is unrelated to the dated log files the library writes for its callers.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general information messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
	// LevelOff disables all output.
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level. Unknown values map to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "off":
		return LevelOff
	default:
		return LevelInfo
	}
}

// Format represents the output format for log messages.
type Format int

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = iota
	// FormatText outputs logs as human-readable text.
	FormatText
)

// ParseFormat converts a string to a Format. Unknown values map to FormatJSON.
func ParseFormat(s string) Format {
	switch s {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatJSON
	}
}

// Entry represents a single log entry.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Component string         `json:"component,omitempty"`
	Message   string         `json:"message"`
	File      string         `json:"file,omitempty"`
	Line      int            `json:"line,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// sink is shared by a logger and every child derived from it, so that
// writes from siblings never interleave.
type sink struct {
	mu  sync.Mutex
	out io.Writer
}

// Logger provides leveled structured logging.
type Logger struct {
	mu         sync.Mutex
	sink       *sink
	level      Level
	format     Format
	addCaller  bool
	callerSkip int
	component  string
	fields     map[string]any
}

// Config holds configuration for a Logger.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer
	AddCaller  bool
	CallerSkip int
}

// New creates a new Logger with the given configuration.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		sink:       &sink{out: out},
		level:      cfg.Level,
		format:     cfg.Format,
		addCaller:  cfg.AddCaller,
		callerSkip: cfg.CallerSkip,
		fields:     make(map[string]any),
	}
}

// DefaultLogger returns an info-level JSON logger writing to stderr.
func DefaultLogger() *Logger {
	return New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: os.Stderr,
	})
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Config{Level: LevelOff, Output: io.Discard})
}

// Configure builds a logger from the textual level and format used in
// configuration files.
func Configure(level, format string, out io.Writer) *Logger {
	lvl := ParseLevel(level)
	return New(Config{
		Level:     lvl,
		Format:    ParseFormat(format),
		Output:    out,
		AddCaller: lvl == LevelDebug,
	})
}

// SetLevel updates the minimum logging level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level.
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.GetLevel() && level < LevelOff
}

func (l *Logger) clone() *Logger {
	fields := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{
		sink:       l.sink,
		level:      l.level,
		format:     l.format,
		addCaller:  l.addCaller,
		callerSkip: l.callerSkip,
		component:  l.component,
		fields:     fields,
	}
}

// With returns a child Logger with the given fields added.
func (l *Logger) With(fields map[string]any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := l.clone()
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

// Named returns a child Logger tagged with a component name.
func (l *Logger) Named(component string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := l.clone()
	child.component = component
	return child
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.log(LevelDebug, msg, nil)
}

// Debugf logs a debug message with fields.
func (l *Logger) Debugf(msg string, fields map[string]any) {
	l.log(LevelDebug, msg, fields)
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.log(LevelInfo, msg, nil)
}

// Infof logs an info message with fields.
func (l *Logger) Infof(msg string, fields map[string]any) {
	l.log(LevelInfo, msg, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.log(LevelWarn, msg, nil)
}

// Warnf logs a warning message with fields.
func (l *Logger) Warnf(msg string, fields map[string]any) {
	l.log(LevelWarn, msg, fields)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.log(LevelError, msg, nil)
}

// Errorf logs an error message with fields.
func (l *Logger) Errorf(msg string, fields map[string]any) {
	l.log(LevelError, msg, fields)
}

func (l *Logger) log(level Level, msg string, extraFields map[string]any) {
	l.mu.Lock()
	currentLevel := l.level
	format := l.format
	addCaller := l.addCaller
	callerSkip := l.callerSkip
	component := l.component
	fields := l.fields
	l.mu.Unlock()

	if level < currentLevel || currentLevel >= LevelOff {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Component: component,
		Message:   msg,
	}

	if addCaller {
		_, file, line, ok := runtime.Caller(2 + callerSkip)
		if ok {
			entry.File = file
			entry.Line = line
		}
	}

	if len(fields) > 0 || len(extraFields) > 0 {
		entry.Fields = make(map[string]any, len(fields)+len(extraFields))
		for k, v := range fields {
			entry.Fields[k] = v
		}
		for k, v := range extraFields {
			entry.Fields[k] = v
		}
	}

	var data []byte
	switch format {
	case FormatText:
		data = formatText(entry)
	default:
		data, _ = json.Marshal(entry)
		data = append(data, '\n')
	}

	l.sink.mu.Lock()
	_, _ = l.sink.out.Write(data)
	l.sink.mu.Unlock()
}

func formatText(e Entry) []byte {
	buf := make([]byte, 0, 256)
	buf = append(buf, e.Timestamp.Format(time.RFC3339)...)
	buf = append(buf, " ["...)
	buf = append(buf, e.Level...)
	buf = append(buf, ']')
	if e.Component != "" {
		buf = append(buf, ' ')
		buf = append(buf, e.Component...)
		buf = append(buf, ':')
	}
	buf = append(buf, ' ')
	buf = append(buf, e.Message...)

	if e.File != "" {
		buf = append(buf, " file="...)
		buf = append(buf, e.File...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(e.Line), 10)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf = append(buf, ' ')
		buf = append(buf, k...)
		buf = append(buf, '=')
		switch val := e.Fields[k].(type) {
		case string:
			buf = append(buf, val...)
		default:
			data, _ := json.Marshal(val)
			buf = append(buf, data...)
		}
	}
	buf = append(buf, '\n')
	return buf
}
