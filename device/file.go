package device

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/wearkit/device/dirty"
	"github.com/joshuapare/wearkit/internal/buf"
	"github.com/joshuapare/wearkit/internal/format"
)

// File is a device backed by an image file, memory-mapped read-write where
// the platform allows it. Changed bytes are tracked and reach stable storage
// on Sync or Close.
type File struct {
	path    string
	f       *os.File
	data    []byte
	tracker *dirty.Tracker
}

// Create writes a new erased (0xFF) image of size bytes at path and opens it.
// An existing file at path is not overwritten.
func Create(path string, size int) (*File, error) {
	if size <= 0 {
		return nil, fmt.Errorf("device: image size must be positive, got %d", size)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	chunk := make([]byte, min(size, 64*1024))
	for i := range chunk {
		chunk[i] = format.ErasedByte
	}
	for left := size; left > 0; {
		n := min(left, len(chunk))
		if _, writeErr := f.Write(chunk[:n]); writeErr != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return nil, fmt.Errorf("device: write erased image: %w", writeErr)
		}
		left -= n
	}
	if syncErr := f.Sync(); syncErr != nil {
		_ = f.Close()
		return nil, fmt.Errorf("device: sync erased image: %w", syncErr)
	}
	if closeErr := f.Close(); closeErr != nil {
		return nil, closeErr
	}
	return Open(path)
}

// Open maps the image at path read-write.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("device: empty image file: %s", path)
	}
	if sz > int64(^uint(0)>>1) {
		_ = f.Close()
		return nil, fmt.Errorf("device: image too large to map (%d bytes)", sz)
	}

	data, err := mapFile(f, int(sz))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("device: map %s: %w", path, err)
	}

	img := &File{path: path, f: f, data: data}
	img.tracker = dirty.NewTracker(img)
	return img, nil
}

// Path returns the image path.
func (d *File) Path() string { return d.path }

// Bytes exposes the mapped image. It satisfies dirty.Mapping.
func (d *File) Bytes() []byte { return d.data }

// File returns the underlying file. It satisfies dirty.Mapping.
func (d *File) File() *os.File { return d.f }

func (d *File) Size() int { return len(d.data) }

func (d *File) Ready() bool { return d.f != nil }

// Pending returns the number of dirty ranges not yet synced.
func (d *File) Pending() int {
	if d.tracker == nil {
		return 0
	}
	return d.tracker.Pending()
}

func (d *File) Read(addr int) (byte, error) {
	if d.data == nil {
		return 0, ErrClosed
	}
	if err := checkAddr(len(d.data), addr); err != nil {
		return 0, err
	}
	return d.data[addr], nil
}

func (d *File) Write(addr int, v byte) error {
	if d.data == nil {
		return ErrClosed
	}
	if err := checkAddr(len(d.data), addr); err != nil {
		return err
	}
	d.data[addr] = v
	d.tracker.Add(addr, 1)
	return nil
}

func (d *File) Update(addr int, v byte) error {
	if d.data == nil {
		return ErrClosed
	}
	if err := checkAddr(len(d.data), addr); err != nil {
		return err
	}
	if d.data[addr] != v {
		d.data[addr] = v
		d.tracker.Add(addr, 1)
	}
	return nil
}

// ReadRange copies [addr, addr+len(dst)) into dst.
func (d *File) ReadRange(addr int, dst []byte) error {
	if d.data == nil {
		return ErrClosed
	}
	src, ok := buf.Slice(d.data, addr, len(dst))
	if !ok {
		_, err := checkRange(d, addr, len(dst))
		return err
	}
	copy(dst, src)
	return nil
}

// UpdateRange writes the differing bytes of src at addr.
func (d *File) UpdateRange(addr int, src []byte) error {
	if d.data == nil {
		return ErrClosed
	}
	dst, ok := buf.Slice(d.data, addr, len(src))
	if !ok {
		_, err := checkRange(d, addr, len(src))
		return err
	}
	for i, b := range src {
		if dst[i] != b {
			dst[i] = b
			d.tracker.Add(addr+i, 1)
		}
	}
	return nil
}

// Sync flushes dirty pages and fdatasyncs the image.
func (d *File) Sync(ctx context.Context) error {
	return d.SyncMode(ctx, dirty.FlushAuto)
}

// SyncMode flushes dirty pages with the given durability mode.
func (d *File) SyncMode(ctx context.Context, mode dirty.FlushMode) error {
	if d.f == nil {
		return ErrClosed
	}
	if err := d.writeBack(ctx); err != nil {
		return fmt.Errorf("device: flush %s: %w", d.path, err)
	}
	return d.tracker.Sync(ctx, mode)
}

// Close writes back dirty pages, unmaps the image and closes the file. It does
// not fdatasync; call Sync first when durability matters.
func (d *File) Close() error {
	if d.f == nil {
		return nil
	}
	var errs []error
	if err := d.writeBack(context.Background()); err != nil {
		errs = append(errs, err)
	}
	if d.data != nil {
		if err := unmapFile(d.data); err != nil {
			errs = append(errs, err)
		}
		d.data = nil
	}
	if err := d.f.Close(); err != nil {
		errs = append(errs, err)
	}
	d.f = nil
	return errors.Join(errs...)
}
