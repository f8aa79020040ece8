package wear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWearLeveling_Next(t *testing.T) {
	tests := []struct {
		name  string
		pool  Pool
		prior *Record
		size  int
		rand  uint64
		want  int
	}{
		{"first record", Pool{Start: 10, End: 60}, nil, 14, 1000, 10 + 1000%36},
		{"first record fills pool", Pool{Start: 10, End: 24}, nil, 14, 1000, 10},
		{"overwrites prior marker", Pool{Start: 0, End: 64}, &Record{Addr: 30}, 14, 0, 24},
		{"equal to marker length moves nothing back", Pool{Start: 0, End: 64}, &Record{Addr: 30}, 8, 0, 30},
		{"lands on pool start", Pool{Start: 4, End: 64}, &Record{Addr: 10}, 14, 0, 4},
		{"wraps to pool end", Pool{Start: 4, End: 64}, &Record{Addr: 9}, 14, 0, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewWearLeveling(newFixedSource(tt.rand))
			got, err := a.Next(tt.pool, tt.prior, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.pool.Contains(got, tt.size))
		})
	}
}

func TestWearLeveling_FirstPlacementInRange(t *testing.T) {
	pool := Pool{Start: 100, End: 300}
	a := NewWearLeveling(NewSeededSource(9))
	for range 1000 {
		got, err := a.Next(pool, nil, 20)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, pool.Start)
		require.Less(t, got, pool.End-20)
	}
}

func TestAllocators_InsufficientSpace(t *testing.T) {
	pool := Pool{Start: 0, End: 20}
	for _, a := range []Allocator{NewWearLeveling(newFixedSource(0)), Sequential{}} {
		_, err := a.Next(pool, nil, 21)
		require.ErrorIs(t, err, ErrInsufficientSpace)
	}
}

func TestSequential_Next(t *testing.T) {
	pool := Pool{Start: 8, End: 64}
	var a Sequential

	got, err := a.Next(pool, nil, 20)
	require.NoError(t, err)
	assert.Equal(t, 8, got)

	got, err = a.Next(pool, &Record{Addr: 30}, 20)
	require.NoError(t, err)
	assert.Equal(t, 30, got)

	// Grown past the pool end: start over at the pool start.
	got, err = a.Next(pool, &Record{Addr: 50}, 20)
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestSeededSource_Deterministic(t *testing.T) {
	a, b := NewSeededSource(42), NewSeededSource(42)
	for range 16 {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, NewSeededSource(1).Uint64(), NewSeededSource(2).Uint64())
}
