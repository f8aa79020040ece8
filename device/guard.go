package device

import (
	"fmt"
)

// GuardOptions configures a diagnostic Guard.
type GuardOptions struct {
	// Lo and Hi bound the addresses the wrapped device may be accessed at,
	// as the half-open range [Lo, Hi). Hi <= 0 means the device size.
	Lo, Hi int

	// MaxWrites caps the number of write cycles issued through the guard.
	// Zero means unlimited.
	MaxWrites uint64

	// Strict panics on any violation instead of returning an error. A
	// violation is a logic defect, so development builds should fail fast.
	Strict bool
}

// Guard wraps a Device with bounds checking, a write budget, and per-address
// write counters. It is meant for diagnostic builds and wear simulations.
type Guard struct {
	inner  Device
	lo, hi int
	budget uint64
	strict bool

	counts []uint32
	total  uint64
}

// NewGuard wraps inner. Bounds are clamped to the device.
func NewGuard(inner Device, opts GuardOptions) *Guard {
	size := inner.Size()
	hi := opts.Hi
	if hi <= 0 || hi > size {
		hi = size
	}
	lo := opts.Lo
	if lo < 0 {
		lo = 0
	}
	if lo > hi {
		lo = hi
	}
	return &Guard{
		inner:  inner,
		lo:     lo,
		hi:     hi,
		budget: opts.MaxWrites,
		strict: opts.Strict,
		counts: make([]uint32, size),
	}
}

func (g *Guard) Size() int { return g.inner.Size() }

func (g *Guard) Ready() bool { return g.inner.Ready() }

// Bounds returns the guarded range.
func (g *Guard) Bounds() (lo, hi int) { return g.lo, g.hi }

func (g *Guard) Read(addr int) (byte, error) {
	if err := g.check(addr); err != nil {
		return 0, err
	}
	return g.inner.Read(addr)
}

func (g *Guard) Write(addr int, v byte) error {
	if err := g.check(addr); err != nil {
		return err
	}
	return g.write(addr, v)
}

// Update forwards only changed bytes, so the counters reflect real wear.
func (g *Guard) Update(addr int, v byte) error {
	if err := g.check(addr); err != nil {
		return err
	}
	cur, err := g.inner.Read(addr)
	if err != nil {
		return err
	}
	if cur == v {
		return nil
	}
	return g.write(addr, v)
}

func (g *Guard) write(addr int, v byte) error {
	if g.budget > 0 && g.total >= g.budget {
		return g.violation(fmt.Errorf("%w: %d writes issued", ErrWriteBudget, g.total))
	}
	if err := g.inner.Write(addr, v); err != nil {
		return err
	}
	g.counts[addr]++
	g.total++
	return nil
}

func (g *Guard) check(addr int) error {
	if addr < g.lo || addr >= g.hi {
		return g.violation(fmt.Errorf("%w: 0x%x outside guard [0x%x, 0x%x)", ErrOutOfRange, addr, g.lo, g.hi))
	}
	return nil
}

func (g *Guard) violation(err error) error {
	if g.strict {
		panic(err)
	}
	return err
}

// Counts returns a copy of the per-address write counters.
func (g *Guard) Counts() []uint32 {
	out := make([]uint32, len(g.counts))
	copy(out, g.counts)
	return out
}

// TotalWrites returns the number of write cycles issued through the guard.
func (g *Guard) TotalWrites() uint64 { return g.total }

// MaxWrites returns the most-written address and its count. Ties resolve to
// the lowest address.
func (g *Guard) MaxWrites() (addr int, n uint32) {
	for i, c := range g.counts {
		if c > n {
			addr, n = i, c
		}
	}
	return addr, n
}

// ResetCounts zeroes the counters and the budget consumption.
func (g *Guard) ResetCounts() {
	clear(g.counts)
	g.total = 0
}
