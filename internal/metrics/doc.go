// Package metrics provides Prometheus metrics for the dated stream pool and
// the retention cleaner.
//
// Exposed metrics:
//   - Appends, append errors and bytes written per pool
//   - Open handle gauge plus opened/closed handle counters
//   - Append (write+flush) latency histogram
//   - Retention sweeps, deleted files and bytes, delete errors, files spared
//     because they were open, and sweep duration
//   - Dated file count and total size in the log directory, refreshed by
//     DirectoryScanner
//
// Usage:
//
//	reg := prometheus.NewRegistry()
//	set := metrics.NewSet(reg)
//
//	pool, _ := dated.NewPool(dir, dated.PoolConfig{Metrics: set.Pool})
//	cleaner := gc.NewRetentionCleaner(dir, pool, gc.RetentionCleanerConfig{Metrics: set.Retention})
//
//	srv := metrics.NewServerWithRegistry(":9090", reg)
//	srv.Start()
package metrics
