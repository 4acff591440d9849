// Package clock provides the time source used to stamp log lines and to
// decide which calendar date is "today".
package clock

import (
	"sync"
	"time"
)

// Clock provides the current instant.
type Clock interface {
	Now() time.Time
}

type localClock struct{}

func (localClock) Now() time.Time { return time.Now() }

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

// Local returns a Clock reporting local wall time.
func Local() Clock { return localClock{} }

// UTC returns a Clock reporting UTC wall time.
func UTC() Clock { return utcClock{} }

// For returns UTC() when useUTC is set and Local() otherwise.
func For(useUTC bool) Clock {
	if useUTC {
		return UTC()
	}
	return Local()
}

// Manual is a Clock whose time only moves when told to.
// It is safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual clock set to t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now returns the clock's current time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
