package wear

import "fmt"

// Pool is the half-open address range [Start, End) a store may use.
type Pool struct {
	Start int
	End   int
}

// NewPool returns the pool starting at start and spanning size bytes on a
// device of the given capacity. A size <= 0 means the rest of the device.
func NewPool(start, size, capacity int) (Pool, error) {
	if start < 0 || start > capacity {
		return Pool{}, fmt.Errorf("%w: start 0x%x outside device of 0x%x bytes", ErrInvalidPool, start, capacity)
	}
	if size <= 0 {
		size = capacity - start
	}
	if size > capacity-start {
		return Pool{}, fmt.Errorf("%w: [0x%x, 0x%x) exceeds device of 0x%x bytes",
			ErrInvalidPool, start, start+size, capacity)
	}
	return Pool{Start: start, End: start + size}, nil
}

// Len returns the pool size in bytes.
func (p Pool) Len() int { return p.End - p.Start }

// Contains reports whether [addr, addr+n) lies inside the pool.
func (p Pool) Contains(addr, n int) bool {
	return n >= 0 && addr >= p.Start && addr <= p.End-n
}

func (p Pool) String() string {
	return fmt.Sprintf("[0x%x, 0x%x)", p.Start, p.End)
}
