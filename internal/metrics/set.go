package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace prefixes every metric exported by this package.
const Namespace = "daylog"

// Set bundles the metrics of one logger instance.
type Set struct {
	Pool      *PoolMetrics
	Retention *RetentionMetrics
	Directory *DirectoryMetrics
}

// NewSet registers pool, retention and directory metrics with reg.
// A nil reg uses the default registry.
func NewSet(reg prometheus.Registerer) *Set {
	if reg == nil {
		return &Set{
			Pool:      NewPoolMetrics(),
			Retention: NewRetentionMetrics(),
			Directory: NewDirectoryMetrics(),
		}
	}
	return &Set{
		Pool:      NewPoolMetricsWithRegistry(reg),
		Retention: NewRetentionMetricsWithRegistry(reg),
		Directory: NewDirectoryMetricsWithRegistry(reg),
	}
}

// PoolMetrics returns the pool metrics, or nil for a nil Set.
func (s *Set) PoolMetrics() *PoolMetrics {
	if s == nil {
		return nil
	}
	return s.Pool
}

// RetentionMetrics returns the retention metrics, or nil for a nil Set.
func (s *Set) RetentionMetrics() *RetentionMetrics {
	if s == nil {
		return nil
	}
	return s.Retention
}

// DirectoryMetrics returns the directory metrics, or nil for a nil Set.
func (s *Set) DirectoryMetrics() *DirectoryMetrics {
	if s == nil {
		return nil
	}
	return s.Directory
}
