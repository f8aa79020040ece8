// Package dirty tracks which byte ranges of a device image have been modified
// and flushes them to stable storage.
//
// # Overview
//
// Every byte a wear-leveled write actually changes is reported with Add. At
// sync time the ranges are page-aligned, sorted and merged, then flushed with
// msync (mmap'd images) or written back by the caller (platforms without
// mmap), followed by fdatasync according to the FlushMode.
//
// # Usage
//
//	t := dirty.NewTracker(img)
//	t.Add(0x40, 11) // header written at 0x40
//	if err := t.Flush(ctx); err != nil {
//	    return err
//	}
//	return t.Sync(ctx, dirty.FlushAuto)
//
// # Page-Level Granularity
//
// Ranges are rounded to 4 KiB pages and clamped to the image length, so a
// one-byte update flushes the page that contains it:
//
//	Dirty: [0x10+1, 0x1010+4, 0x5000+2] → Ranges: [0x0-0x2000, 0x5000-0x6000]
//
// # Thread Safety
//
// Trackers are not thread-safe. The owning device serializes access.
package dirty
