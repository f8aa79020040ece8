//go:build darwin

package dirty

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// flushRanges flushes the whole mapping.
//
// On macOS, msync() requires the address to match the original mmap() address,
// so sub-slices cannot be passed. The kernel only writes pages that are dirty.
func (t *Tracker) flushRanges(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return unix.Msync(data, unix.MS_SYNC)
}

// fdatasync uses F_FULLFSYNC when fullfsync is set, which forces the drive to
// flush its own cache; otherwise plain fsync, as macOS has no fdatasync.
func fdatasync(f *os.File, fullfsync bool) error {
	if fullfsync {
		_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(int(f.Fd()))
}
