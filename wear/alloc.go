package wear

import (
	"fmt"

	"github.com/joshuapare/wearkit/internal/format"
)

// Allocator chooses the address of the next record for a marker.
//
// prior is the marker's current valid record, or nil when there is none.
// Implementations must return an address whose [addr, addr+size) lies in
// pool, and must fail with ErrInsufficientSpace when size exceeds the pool.
type Allocator interface {
	Next(pool Pool, prior *Record, size int) (int, error)
}

func checkFits(pool Pool, size int) error {
	if size > pool.Len() {
		return fmt.Errorf("%w: record of %d bytes, pool %s holds %d",
			ErrInsufficientSpace, size, pool, pool.Len())
	}
	return nil
}

// WearLeveling places each new record so its tail overwrites the previous
// record's marker, and places first records at random.
type WearLeveling struct {
	Rand Source
}

// NewWearLeveling returns a wear-leveling allocator drawing from src.
func NewWearLeveling(src Source) *WearLeveling {
	return &WearLeveling{Rand: src}
}

func (a *WearLeveling) Next(pool Pool, prior *Record, size int) (int, error) {
	if err := checkFits(pool, size); err != nil {
		return 0, err
	}
	if prior != nil {
		addr := prior.Addr - (size - format.MarkerLen)
		if pool.Contains(addr, size) {
			return addr, nil
		}
		// Wrapped past the pool start. The store retires the stale marker.
		return pool.End - size, nil
	}
	span := pool.Len() - size
	if span == 0 {
		return pool.Start, nil
	}
	return pool.Start + int(a.Rand.Uint64()%uint64(span)), nil
}

// Sequential keeps records in place: a marker's record is rewritten at its
// current address, and a first record goes to the pool start. Use it for
// values that must not move, one marker per pool.
type Sequential struct{}

func (Sequential) Next(pool Pool, prior *Record, size int) (int, error) {
	if err := checkFits(pool, size); err != nil {
		return 0, err
	}
	if prior != nil && pool.Contains(prior.Addr, size) {
		return prior.Addr, nil
	}
	return pool.Start, nil
}
