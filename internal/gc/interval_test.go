package gc

import (
	"testing"
	"time"
)

func TestSweepInterval(t *testing.T) {
	tests := []struct {
		name      string
		threshold time.Duration
		want      time.Duration
	}{
		{"zero clamps to minimum", 0, 5 * time.Second},
		{"one second clamps to minimum", time.Second, 5 * time.Second},
		{"exactly minimum", 25 * time.Second, 5 * time.Second},
		{"one minute inside range", time.Minute, 12 * time.Second},
		{"one day inside range", 24 * time.Hour, 24 * time.Hour / 5},
		{"exactly maximum", 40 * time.Hour, 8 * time.Hour},
		{"thirty days clamps to maximum", 30 * 24 * time.Hour, 8 * time.Hour},
		{"one year clamps to maximum", 365 * 24 * time.Hour, 8 * time.Hour},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SweepInterval(tc.threshold); got != tc.want {
				t.Errorf("SweepInterval(%v) = %v, want %v", tc.threshold, got, tc.want)
			}
		})
	}
}
