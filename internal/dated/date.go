package dated

import (
	"fmt"
	"strings"
	"time"
)

// FileExt is the extension of every dated log file.
const FileExt = ".log"

const dateLayout = "2006-01-02"

// Date is a calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String returns the zero-padded ISO form, YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// FileName returns the name of the log file for d, YYYY-MM-DD.log.
func (d Date) FileName() string {
	return d.String() + FileExt
}

// ParseFileName extracts the date from a dated log file name.
func ParseFileName(name string) (Date, error) {
	stem, ok := strings.CutSuffix(name, FileExt)
	if !ok {
		return Date{}, fmt.Errorf("parse %q: missing %s extension", name, FileExt)
	}
	t, err := time.Parse(dateLayout, stem)
	if err != nil {
		return Date{}, fmt.Errorf("parse %q: %w", name, err)
	}
	return DateOf(t), nil
}
