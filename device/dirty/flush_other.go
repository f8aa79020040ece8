//go:build !linux && !freebsd && !darwin && !windows

package dirty

import (
	"context"
	"os"
)

func (t *Tracker) flushRanges(_ context.Context, _ []byte) error {
	return ErrNotMapped
}

func fdatasync(f *os.File, _ bool) error {
	return f.Sync()
}
