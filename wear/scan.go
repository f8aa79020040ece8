package wear

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/wearkit/device"
	"github.com/joshuapare/wearkit/internal/format"
)

// DefaultWindowSize is the scan window used when none is configured.
const DefaultWindowSize = 128

// Scanner finds markers by reading the device in fixed-size windows.
// Consecutive windows overlap by MarkerLen-1 bytes so a marker straddling a
// window boundary is still found at its true address.
//
// The window buffer is allocated once; a Scanner never allocates while
// scanning.
type Scanner struct {
	dev    device.Device
	window []byte
}

// NewScanner returns a scanner with a window of size bytes.
func NewScanner(dev device.Device, size int) (*Scanner, error) {
	if size <= format.MarkerLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrWindowTooSmall, size)
	}
	return &Scanner{dev: dev, window: make([]byte, size)}, nil
}

// WindowSize returns the window length in bytes.
func (s *Scanner) WindowSize() int { return len(s.window) }

// FindMarker returns the lowest address >= from at which marker occurs
// entirely inside pool. ok is false when there is none.
func (s *Scanner) FindMarker(pool Pool, from int, marker format.Marker) (addr int, ok bool, err error) {
	from = max(from, pool.Start)
	step := len(s.window) - (format.MarkerLen - 1)

	for at := from; pool.End-at >= format.MarkerLen; at += step {
		w := s.window[:min(len(s.window), pool.End-at)]
		if err := device.ReadRange(s.dev, at, w); err != nil {
			return 0, false, err
		}
		if i := bytes.Index(w, marker[:]); i >= 0 {
			return at + i, true, nil
		}
	}
	return 0, false, nil
}

// checksumRange sums n device bytes starting at addr through the window.
// It clobbers the window, so callers must not be mid-scan.
func (s *Scanner) checksumRange(addr, n int) (uint8, error) {
	var sum uint8
	for n > 0 {
		w := s.window[:min(len(s.window), n)]
		if err := device.ReadRange(s.dev, addr, w); err != nil {
			return 0, err
		}
		sum = format.Sum8Update(sum, w)
		addr += len(w)
		n -= len(w)
	}
	return sum, nil
}
