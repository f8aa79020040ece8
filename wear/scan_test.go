package wear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wearkit/device"
	"github.com/joshuapare/wearkit/internal/format"
)

func TestNewScanner_WindowTooSmall(t *testing.T) {
	_, err := NewScanner(device.NewMemory(64), format.MarkerLen)
	require.ErrorIs(t, err, ErrWindowTooSmall)

	s, err := NewScanner(device.NewMemory(64), format.MarkerLen+1)
	require.NoError(t, err)
	assert.Equal(t, format.MarkerLen+1, s.WindowSize())
}

// TestScanner_EveryPosition places the marker at every legal address with a
// window small enough that many positions straddle window boundaries.
func TestScanner_EveryPosition(t *testing.T) {
	const size = 64
	m := mustMarker(t, "WEARKEY1")
	pool := Pool{Start: 0, End: size}

	for _, window := range []int{9, 16, 17, 128} {
		for p := 0; p+format.MarkerLen <= size; p++ {
			mem := device.NewMemory(size)
			copy(mem.Bytes()[p:], m[:])

			s, err := NewScanner(mem, window)
			require.NoError(t, err)

			addr, ok, err := s.FindMarker(pool, 0, m)
			require.NoError(t, err)
			require.True(t, ok, "window=%d pos=%d not found", window, p)
			require.Equal(t, p, addr, "window=%d", window)
		}
	}
}

func TestScanner_StraddlesWindowBoundary(t *testing.T) {
	mem := device.NewMemory(64)
	m := mustMarker(t, "WEARKEY1")
	// Window 16: the first read covers [0,16); the marker at 12 has only
	// four bytes in it. The second read starts at 9.
	copy(mem.Bytes()[12:], m[:])

	s, err := NewScanner(mem, 16)
	require.NoError(t, err)
	addr, ok, err := s.FindMarker(Pool{Start: 0, End: 64}, 0, m)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12, addr)
}

func TestScanner_Bounds(t *testing.T) {
	mem := device.NewMemory(64)
	m := mustMarker(t, "WEARKEY1")
	copy(mem.Bytes()[40:], m[:])

	s, err := NewScanner(mem, 16)
	require.NoError(t, err)

	t.Run("from past marker", func(t *testing.T) {
		_, ok, err := s.FindMarker(Pool{Start: 0, End: 64}, 41, m)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("marker crosses pool end", func(t *testing.T) {
		_, ok, err := s.FindMarker(Pool{Start: 0, End: 47}, 0, m)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("marker ends at pool end", func(t *testing.T) {
		addr, ok, err := s.FindMarker(Pool{Start: 0, End: 48}, 0, m)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 40, addr)
	})

	t.Run("less than a marker left", func(t *testing.T) {
		_, ok, err := s.FindMarker(Pool{Start: 0, End: 64}, 60, m)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("from below pool start is clamped", func(t *testing.T) {
		addr, ok, err := s.FindMarker(Pool{Start: 32, End: 64}, 0, m)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 40, addr)
	})
}

func TestScanner_LowestMatchWins(t *testing.T) {
	mem := device.NewMemory(64)
	m := mustMarker(t, "AB")
	copy(mem.Bytes()[30:], m[:])
	copy(mem.Bytes()[5:], m[:])

	s, err := NewScanner(mem, 12)
	require.NoError(t, err)
	addr, ok, err := s.FindMarker(Pool{Start: 0, End: 64}, 0, m)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, addr)
}

func TestScanner_DeviceErrorPassesThrough(t *testing.T) {
	mem := device.NewMemory(64)
	g := device.NewGuard(mem, device.GuardOptions{Hi: 32})
	s, err := NewScanner(g, 16)
	require.NoError(t, err)

	_, _, err = s.FindMarker(Pool{Start: 0, End: 64}, 0, mustMarker(t, "X"))
	require.ErrorIs(t, err, device.ErrOutOfRange)
}
