//go:build windows

package dirty

import (
	"context"
	"os"

	"golang.org/x/sys/windows"
)

// flushRanges is unsupported: images are not mapped on Windows and the device
// writes Ranges back through the file handle instead.
func (t *Tracker) flushRanges(_ context.Context, _ []byte) error {
	return ErrNotMapped
}

// fdatasync flushes file buffers with FlushFileBuffers.
// The fullfsync parameter is ignored on Windows.
func fdatasync(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
