package wear

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Mode selects the built-in allocator.
type Mode int

const (
	// ModeWearLevel moves every write, overwriting the prior marker.
	ModeWearLevel Mode = iota

	// ModeSequential rewrites records in place. Values stored this way do not
	// move and get no wear leveling.
	ModeSequential
)

func (m Mode) String() string {
	switch m {
	case ModeWearLevel:
		return "wear"
	case ModeSequential:
		return "sequential"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "wear" or "sequential".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wear", "wear-level", "wearlevel":
		return ModeWearLevel, nil
	case "sequential", "seq", "fixed":
		return ModeSequential, nil
	default:
		return 0, fmt.Errorf("wear: unknown mode %q", s)
	}
}

// Options configures a Store.
type Options struct {
	// PoolStart is the first device address the store may use.
	// Default: 0
	PoolStart int

	// PoolSize is the pool length in bytes. Zero or negative means the rest of
	// the device.
	// Default: 0
	PoolSize int

	// WindowSize is the marker scan window in bytes. Must exceed the marker
	// length.
	// Default: 128
	WindowSize int

	// Mode selects the built-in allocator. Ignored when Allocator is set.
	// Default: ModeWearLevel
	Mode Mode

	// Allocator overrides Mode with a custom placement policy.
	Allocator Allocator

	// Rand places first records in ModeWearLevel. Nil seeds a generator from
	// the clock.
	Rand Source

	// Logger receives debug events (rejected candidates, chosen slots).
	// Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns options for a wear-leveled store over the whole device.
func DefaultOptions() *Options {
	return &Options{
		PoolStart:  0,
		PoolSize:   0,
		WindowSize: DefaultWindowSize,
		Mode:       ModeWearLevel,
	}
}

func (o *Options) allocator() Allocator {
	if o.Allocator != nil {
		return o.Allocator
	}
	if o.Mode == ModeSequential {
		return Sequential{}
	}
	src := o.Rand
	if src == nil {
		src = NewTimeSource()
	}
	return NewWearLeveling(src)
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
