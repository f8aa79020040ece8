package device

import (
	"fmt"

	"github.com/joshuapare/wearkit/internal/buf"
	"github.com/joshuapare/wearkit/internal/mmfile"
)

// Snapshot is a read-only view of an image file. Writes that would change a
// byte fail with ErrReadOnly.
type Snapshot struct {
	path   string
	data   []byte
	unmap  func() error
	closed bool
}

// OpenSnapshot maps the image at path read-only.
func OpenSnapshot(path string) (*Snapshot, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("device: open snapshot %s: %w", path, err)
	}
	return &Snapshot{path: path, data: data, unmap: unmap}, nil
}

// Path returns the image path.
func (s *Snapshot) Path() string { return s.path }

// Bytes exposes the mapped image. It must not be modified.
func (s *Snapshot) Bytes() []byte { return s.data }

func (s *Snapshot) Size() int { return len(s.data) }

func (s *Snapshot) Ready() bool { return !s.closed }

func (s *Snapshot) Read(addr int) (byte, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if err := checkAddr(len(s.data), addr); err != nil {
		return 0, err
	}
	return s.data[addr], nil
}

func (s *Snapshot) Write(addr int, _ byte) error {
	if s.closed {
		return ErrClosed
	}
	if err := checkAddr(len(s.data), addr); err != nil {
		return err
	}
	return fmt.Errorf("%w: write at 0x%x", ErrReadOnly, addr)
}

// Update succeeds without writing when v is already stored at addr.
func (s *Snapshot) Update(addr int, v byte) error {
	cur, err := s.Read(addr)
	if err != nil {
		return err
	}
	if cur == v {
		return nil
	}
	return fmt.Errorf("%w: write at 0x%x", ErrReadOnly, addr)
}

// ReadRange copies [addr, addr+len(dst)) into dst.
func (s *Snapshot) ReadRange(addr int, dst []byte) error {
	if s.closed {
		return ErrClosed
	}
	src, ok := buf.Slice(s.data, addr, len(dst))
	if !ok {
		_, err := checkRange(s, addr, len(dst))
		return err
	}
	copy(dst, src)
	return nil
}

// Close unmaps the image. Further access fails with ErrClosed.
func (s *Snapshot) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.data = nil
	return s.unmap()
}
