//go:build linux

package gc

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

// FileCreationTime returns the birth time of path as reported by statx(2).
// Filesystems that do not record a birth time fall back to the modification
// time.
func FileCreationTime(path string, info fs.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err == nil && stx.Mask&unix.STATX_BTIME != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return info.ModTime()
}
