package gc

import "time"

const (
	// MinSweepInterval is the shortest period between retention sweeps.
	MinSweepInterval = 5 * time.Second

	// MaxSweepInterval is the longest period between retention sweeps.
	MaxSweepInterval = 8 * time.Hour
)

// SweepInterval derives the retention sweep period from the threshold:
// threshold/5 clamped to [MinSweepInterval, MaxSweepInterval].
func SweepInterval(threshold time.Duration) time.Duration {
	interval := threshold / 5
	if interval < MinSweepInterval {
		return MinSweepInterval
	}
	if interval > MaxSweepInterval {
		return MaxSweepInterval
	}
	return interval
}
