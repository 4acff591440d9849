// Package line renders log records as single text lines with a timestamp,
// an upper-cased label and content aligned to a common column.
package line

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultDateTimeFormat is the timestamp layout used when none is given.
	DefaultDateTimeFormat = "2006-01-02 15:04:05"

	// DefaultLabelWidth is the padding width when no enabled labels are set.
	DefaultLabelWidth = 5
)

// Options configures a Formatter.
type Options struct {
	// DateTimeFormat is a Go time layout. Default: DefaultDateTimeFormat.
	DateTimeFormat string

	// EnabledLabels restricts output to these labels. Empty allows all.
	EnabledLabels []string
}

// Formatter builds log lines. It is safe for concurrent use.
type Formatter struct {
	layout  string
	enabled map[string]struct{}

	mu    sync.Mutex
	width int
}

// New creates a Formatter.
func New(opts Options) *Formatter {
	f := &Formatter{
		layout: opts.DateTimeFormat,
		width:  DefaultLabelWidth,
	}
	if f.layout == "" {
		f.layout = DefaultDateTimeFormat
	}

	if len(opts.EnabledLabels) > 0 {
		f.enabled = make(map[string]struct{}, len(opts.EnabledLabels))
		f.width = 0
		for _, l := range opts.EnabledLabels {
			l = NormalizeLabel(l)
			if l == "" {
				continue
			}
			f.enabled[l] = struct{}{}
			f.width = max(f.width, utf8.RuneCountInString(l))
		}
		if len(f.enabled) == 0 {
			f.enabled = nil
			f.width = DefaultLabelWidth
		}
	}
	return f
}

// NormalizeLabel trims surrounding whitespace and upper-cases label.
func NormalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// Layout returns the timestamp layout in use.
func (f *Formatter) Layout() string {
	return f.layout
}

// Width returns the current label column width.
func (f *Formatter) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

// Enabled reports whether label passes the enabled-labels filter.
func (f *Formatter) Enabled(label string) bool {
	if f.enabled == nil {
		return true
	}
	_, ok := f.enabled[NormalizeLabel(label)]
	return ok
}

// Format renders "<timestamp> <LABEL> <padding><content>". ok is false when
// the label is filtered out; that is not an error.
func (f *Formatter) Format(ts time.Time, label, content string) (string, bool) {
	label = NormalizeLabel(label)
	if !f.Enabled(label) {
		return "", false
	}

	n := utf8.RuneCountInString(label)
	f.mu.Lock()
	if n > f.width {
		f.width = n
	}
	pad := f.width - n
	f.mu.Unlock()

	stamp := ts.Format(f.layout)

	var b strings.Builder
	b.Grow(len(stamp) + len(label) + pad + len(content) + 2)
	b.WriteString(stamp)
	b.WriteByte(' ')
	b.WriteString(label)
	b.WriteByte(' ')
	for i := 0; i < pad; i++ {
		b.WriteByte(' ')
	}
	b.WriteString(content)
	return b.String(), true
}
