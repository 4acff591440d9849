//go:build !linux && !darwin && !windows

package gc

import (
	"io/fs"
	"time"
)

// FileCreationTime returns the modification time; this platform exposes no
// portable birth time.
func FileCreationTime(_ string, info fs.FileInfo) time.Time {
	return info.ModTime()
}
