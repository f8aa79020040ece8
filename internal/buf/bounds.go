package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that n bytes starting at off fit inside [lo, hi).
// Returns the exclusive end offset if valid, or an error describing the
// specific failure (overflow or out of bounds).
//
// Device implementations use it before touching their backing storage:
//
//	end, err := buf.CheckRange(0, d.Size(), addr, len(dst))
//	if err != nil {
//	    return fmt.Errorf("%w: %w", ErrOutOfRange, err)
//	}
func CheckRange(lo, hi, off, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	if off < lo {
		return 0, fmt.Errorf("bounds: off=%d < lo=%d", off, lo)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: off=%d + len=%d", off, n)
	}
	if end > hi {
		return 0, fmt.Errorf("bounds: end=%d > hi=%d", end, hi)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}
