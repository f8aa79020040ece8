//go:build linux || freebsd

package dirty

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// flushRanges msyncs each coalesced range.
//
// On Linux and FreeBSD, msync() accepts page-aligned sub-slices of the mapping.
func (t *Tracker) flushRanges(ctx context.Context, data []byte) error {
	for _, r := range t.coalesce(int64(len(data))) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := unix.Msync(data[r.Off:r.Off+r.Len], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

// fdatasync syncs file data without forcing a metadata update.
// The fullfsync parameter is ignored on Linux/FreeBSD.
func fdatasync(f *os.File, _ bool) error {
	return unix.Fdatasync(int(f.Fd()))
}
