package wear

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/wearkit/device"
	"github.com/joshuapare/wearkit/internal/format"
)

// Store reads and writes wear-leveled records in a pool of a device.
//
// NOT thread-safe. The store assumes it is the pool's only writer.
type Store struct {
	dev   device.Device
	pool  Pool
	scan  *Scanner
	alloc Allocator
	log   *slog.Logger

	// cursor biases the next scan toward the last record seen.
	cursor int
	// locked is set by the first write; the pool is fixed from then on.
	locked bool
}

// New returns a store over dev. A nil opts uses DefaultOptions.
func New(dev device.Device, opts *Options) (*Store, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	window := opts.WindowSize
	if window == 0 {
		window = DefaultWindowSize
	}
	scan, err := NewScanner(dev, window)
	if err != nil {
		return nil, err
	}
	pool, err := NewPool(opts.PoolStart, opts.PoolSize, dev.Size())
	if err != nil {
		return nil, err
	}
	return &Store{
		dev:    dev,
		pool:   pool,
		scan:   scan,
		alloc:  opts.allocator(),
		log:    opts.logger(),
		cursor: pool.Start,
	}, nil
}

// Device returns the underlying device.
func (s *Store) Device() device.Device { return s.dev }

// Pool returns the configured pool.
func (s *Store) Pool() Pool { return s.pool }

// Cursor returns the address the next scan starts from.
func (s *Store) Cursor() int { return s.cursor }

// SetPool moves the pool to start and size bytes (size <= 0: rest of the
// device). It fails with ErrPoolLocked once the store has written a record,
// since moving the pool would orphan the addresses already issued.
func (s *Store) SetPool(start, size int) error {
	if s.locked {
		return ErrPoolLocked
	}
	pool, err := NewPool(start, size, s.dev.Size())
	if err != nil {
		return err
	}
	s.pool = pool
	s.cursor = pool.Start
	s.log.Info("pool configured", "pool", pool.String(), "size", pool.Len())
	return nil
}

// Read returns the payload of the valid record for marker, or ErrNoRecord.
func (s *Store) Read(marker format.Marker) ([]byte, error) {
	rec, err := s.Locate(marker)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, rec.Header.Size)
	if err := device.ReadRange(s.dev, rec.PayloadAddr(), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ReadInto copies the payload for marker into dst and returns its length.
// A dst shorter than the payload yields io.ErrShortBuffer.
func (s *Store) ReadInto(marker format.Marker, dst []byte) (int, error) {
	rec, err := s.Locate(marker)
	if err != nil {
		return 0, err
	}
	n := int(rec.Header.Size)
	if len(dst) < n {
		return 0, fmt.Errorf("wear: payload of %d bytes: %w", n, io.ErrShortBuffer)
	}
	if err := device.ReadRange(s.dev, rec.PayloadAddr(), dst[:n]); err != nil {
		return 0, err
	}
	return n, nil
}

// Write stores payload as the new value for marker and returns the record
// address. The header is written before the payload; both go through
// device.UpdateRange so unchanged bytes cost no endurance.
//
// Records that cannot fit the pool fail with ErrInsufficientSpace before the
// device is touched.
func (s *Store) Write(marker format.Marker, payload []byte) (int, error) {
	hdr, err := format.NewHeader(marker, payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	size := hdr.RecordSize()
	if err := checkFits(s.pool, size); err != nil {
		return 0, err
	}

	var prior *Record
	rec, err := s.Locate(marker)
	switch {
	case err == nil:
		prior = &rec
	case !errors.Is(err, ErrNoRecord):
		return 0, err
	}

	addr, err := s.alloc.Next(s.pool, prior, size)
	if err != nil {
		return 0, err
	}
	if !s.pool.Contains(addr, size) {
		return 0, fmt.Errorf("%w: allocator returned [0x%x, 0x%x) outside %s",
			device.ErrOutOfRange, addr, addr+size, s.pool)
	}

	raw := hdr.Bytes()
	if err := device.UpdateRange(s.dev, addr, raw[:]); err != nil {
		return 0, err
	}
	if err := device.UpdateRange(s.dev, addr+format.HeaderSize, payload); err != nil {
		return 0, err
	}
	s.locked = true
	s.cursor = addr

	if prior != nil && !covers(addr, size, prior.Addr) {
		if err := s.retire(*prior); err != nil {
			return 0, err
		}
	}

	s.log.Debug("record written",
		"marker", marker.String(), "addr", addr, "size", size, "moved", prior != nil && prior.Addr != addr)
	return addr, nil
}

// covers reports whether a record at addr of size bytes overwrote the whole
// marker at markerAddr.
func covers(addr, size, markerAddr int) bool {
	return addr <= markerAddr && markerAddr+format.MarkerLen <= addr+size
}

// retire destroys a stale record's marker that the new record did not
// overwrite, by inverting its first byte. It writes nothing if the marker is
// already broken.
func (s *Store) retire(rec Record) error {
	var cur format.Marker
	if err := device.ReadRange(s.dev, rec.Addr, cur[:]); err != nil {
		return err
	}
	if cur != rec.Header.Marker {
		return nil
	}
	s.log.Debug("retiring stale marker", "marker", cur.String(), "addr", rec.Addr)
	return s.dev.Update(rec.Addr, ^cur[0])
}
