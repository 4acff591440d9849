// Package dated implements the dated stream pool: one append-only file handle
// per calendar date, opened lazily on first use and retired by a periodic
// sweep once its date is in the past.
//
// Files are named YYYY-MM-DD.log and live directly under the pool's directory.
// They are opened with O_APPEND and without any exclusive lock, so external
// readers can tail them while the pool writes.
//
// # Concurrency
//
// A single mutex guards the date-to-handle map and every write through a
// handle. Appends to the same date are therefore serialized in call order,
// and the daily sweep never closes a handle while a write is in flight.
//
// # Usage
//
//	pool, err := dated.NewPool("logs", dated.PoolConfig{Clock: clock.Local()})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pool.Append(time.Now(), "2024-01-01 10:00:00 INFO  started"); err != nil {
//	    return err
//	}
package dated
