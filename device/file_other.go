//go:build !linux && !freebsd && !darwin

package device

import (
	"context"
	"io"
	"os"
)

// mapFile reads the entire image when mmap is not available. Dirty ranges are
// written back through the file in writeBack.
func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, int64(size)), data); err != nil {
		return nil, err
	}
	return data, nil
}

func unmapFile([]byte) error { return nil }

func (d *File) writeBack(ctx context.Context) error {
	for _, r := range d.tracker.Ranges() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := d.f.WriteAt(d.data[r.Off:r.Off+r.Len], r.Off); err != nil {
			return err
		}
	}
	d.tracker.Reset()
	return nil
}
