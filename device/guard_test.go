package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_CountsOnlyRealWrites(t *testing.T) {
	g := NewGuard(NewMemory(32), GuardOptions{})

	require.NoError(t, g.Update(4, 0xFF)) // unchanged, no cycle
	require.NoError(t, g.Update(4, 0x00))
	require.NoError(t, g.Update(4, 0x00))
	require.NoError(t, g.Write(4, 0x00)) // raw writes always count
	require.NoError(t, g.Write(5, 0x01))

	counts := g.Counts()
	assert.Equal(t, uint32(2), counts[4])
	assert.Equal(t, uint32(1), counts[5])
	assert.Equal(t, uint64(3), g.TotalWrites())

	addr, n := g.MaxWrites()
	assert.Equal(t, 4, addr)
	assert.Equal(t, uint32(2), n)

	g.ResetCounts()
	assert.Zero(t, g.TotalWrites())
	_, n = g.MaxWrites()
	assert.Zero(t, n)
}

func TestGuard_Bounds(t *testing.T) {
	g := NewGuard(NewMemory(64), GuardOptions{Lo: 16, Hi: 32})

	lo, hi := g.Bounds()
	assert.Equal(t, 16, lo)
	assert.Equal(t, 32, hi)

	require.NoError(t, g.Write(16, 1))
	require.NoError(t, g.Write(31, 1))
	require.ErrorIs(t, g.Write(15, 1), ErrOutOfRange)
	require.ErrorIs(t, g.Update(32, 1), ErrOutOfRange)
	_, err := g.Read(40)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestGuard_WriteBudget(t *testing.T) {
	g := NewGuard(NewMemory(8), GuardOptions{MaxWrites: 2})

	require.NoError(t, g.Write(0, 1))
	require.NoError(t, g.Write(1, 1))
	require.ErrorIs(t, g.Write(2, 1), ErrWriteBudget)
	require.NoError(t, g.Update(1, 1), "unchanged update does not spend budget")
}

func TestGuard_StrictPanics(t *testing.T) {
	g := NewGuard(NewMemory(8), GuardOptions{Hi: 4, Strict: true})

	assert.Panics(t, func() { _ = g.Write(4, 0) })
	assert.NotPanics(t, func() { _ = g.Write(3, 0) })
}

func TestGuard_ClampsBounds(t *testing.T) {
	g := NewGuard(NewMemory(8), GuardOptions{Lo: -4, Hi: 100})
	lo, hi := g.Bounds()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 8, hi)
}
