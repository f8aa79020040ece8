package wear

import (
	"math/rand/v2"
	"time"
)

// Source supplies the pseudo-random values used to place a marker's first
// record. Tests inject deterministic sequences.
type Source interface {
	Uint64() uint64
}

// NewTimeSource returns a PCG generator seeded from the clock.
func NewTimeSource() Source {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

// NewSeededSource returns a deterministic PCG generator.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}
