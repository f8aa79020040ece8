package dirty

import (
	"context"
	"errors"
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// ErrNotMapped is returned by Flush on platforms where images are not
// memory-mapped; the owner writes Ranges back itself.
var ErrNotMapped = errors.New("dirty: image is not memory-mapped")

// FlushMode controls durability guarantees for Sync.
type FlushMode int

const (
	// FlushAuto flushes dirty pages and then fdatasyncs the file.
	// On macOS this uses plain fsync.
	FlushAuto FlushMode = iota

	// FlushDataOnly flushes dirty pages only. The caller is responsible for
	// syncing the file descriptor later, e.g. after a batch of writes.
	FlushDataOnly

	// FlushFull is FlushAuto with F_FULLFSYNC on macOS. Use this for
	// power-loss sensitive workflows.
	FlushFull
)

// Range represents a dirty byte range (absolute image offsets).
type Range struct {
	Off int64 // Absolute offset in the image
	Len int64 // Length in bytes
}

// Tracker accumulates dirty ranges and flushes them efficiently.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	m        Mapping
	ranges   []Range // raw ranges, coalesced at flush time
	pageSize int64
}

// NewTracker creates a dirty tracker for the given image.
func NewTracker(m Mapping) *Tracker {
	return &Tracker{
		m:        m,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
}

// Add records a dirty range.
//
// A range that starts exactly where the previous one ended extends it, so
// byte-at-a-time record writes stay a single entry.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	if n := len(t.ranges); n > 0 {
		last := &t.ranges[n-1]
		if last.Off+last.Len == int64(off) {
			last.Len += int64(length)
			return
		}
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Pending returns the number of raw (uncoalesced) ranges awaiting a flush.
func (t *Tracker) Pending() int {
	return len(t.ranges)
}

// Ranges returns the page-aligned, sorted, merged ranges that a flush would
// write, clamped to the image length.
func (t *Tracker) Ranges() []Range {
	return t.coalesce(int64(len(t.m.Bytes())))
}

// Flush writes all dirty pages of a memory-mapped image back to the file and
// clears the tracked ranges.
//
// The context is checked between ranges; if cancelled, some ranges may have
// been flushed while others have not, and all of them stay tracked.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := t.m.Bytes()
	if len(data) == 0 {
		t.Reset()
		return nil
	}
	if err := t.flushRanges(ctx, data); err != nil {
		return err
	}
	t.Reset()
	return nil
}

// Sync makes flushed data durable according to mode.
func (t *Tracker) Sync(ctx context.Context, mode FlushMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mode == FlushDataOnly {
		return nil
	}
	f := t.m.File()
	if f == nil {
		return nil
	}
	return fdatasync(f, mode == FlushFull)
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ranges. Ends are clamped to limit.
func (t *Tracker) coalesce(limit int64) []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, 0, len(t.ranges))
	for _, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		if end > limit {
			end = limit
		}
		if start >= end {
			continue
		}
		aligned = append(aligned, Range{Off: start, Len: end - start})
	}
	if len(aligned) == 0 {
		return nil
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			if end := next.Off + next.Len; end > current.Off+current.Len {
				current.Len = end - current.Off
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
