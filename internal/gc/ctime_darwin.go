//go:build darwin

package gc

import (
	"io/fs"
	"syscall"
	"time"
)

// FileCreationTime returns the birth time of the file described by info.
func FileCreationTime(_ string, info fs.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Unix())
	}
	return info.ModTime()
}
