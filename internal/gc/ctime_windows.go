//go:build windows

package gc

import (
	"io/fs"
	"syscall"
	"time"
)

// FileCreationTime returns the creation time of the file described by info.
func FileCreationTime(_ string, info fs.FileInfo) time.Time {
	if d, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return time.Unix(0, d.CreationTime.Nanoseconds())
	}
	return info.ModTime()
}
