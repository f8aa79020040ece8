//go:build linux || freebsd || darwin

package device

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func unmapFile(data []byte) error {
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

// writeBack msyncs the dirty pages of the shared mapping.
func (d *File) writeBack(ctx context.Context) error {
	return d.tracker.Flush(ctx)
}
