package dated

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirStats counts the dated log files in the pool's directory and their total
// size. Files with other names are ignored. A directory that does not exist
// yet reports zero.
func (p *Pool) DirStats(ctx context.Context) (files int, bytes int64, err error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("read log directory %s: %w", p.dir, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		if !e.Type().IsRegular() {
			continue
		}
		if _, err := ParseFileName(e.Name()); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files++
		bytes += info.Size()
	}
	return files, bytes, nil
}
