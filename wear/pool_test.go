package wear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool(t *testing.T) {
	tests := []struct {
		name        string
		start, size int
		want        Pool
		wantErr     bool
	}{
		{"whole device", 0, 0, Pool{0, 256}, false},
		{"rest of device", 64, 0, Pool{64, 256}, false},
		{"negative size means rest", 64, -1, Pool{64, 256}, false},
		{"explicit", 16, 32, Pool{16, 48}, false},
		{"ends at device end", 200, 56, Pool{200, 256}, false},
		{"empty at end", 256, 0, Pool{256, 256}, false},
		{"negative start", -1, 10, Pool{}, true},
		{"start past end", 257, 0, Pool{}, true},
		{"too long", 200, 57, Pool{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPool(tt.start, tt.size, 256)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPool)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPool_Contains(t *testing.T) {
	p := Pool{Start: 10, End: 30}
	assert.True(t, p.Contains(10, 20))
	assert.True(t, p.Contains(29, 1))
	assert.True(t, p.Contains(30, 0))
	assert.False(t, p.Contains(9, 1))
	assert.False(t, p.Contains(11, 20))
	assert.False(t, p.Contains(10, -1))
	assert.Equal(t, 20, p.Len())
	assert.Equal(t, "[0xa, 0x1e)", p.String())
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint8(0), Checksum(nil))
	assert.Equal(t, uint8(0x06), Checksum([]byte{1, 2, 3}))
	assert.Equal(t, uint8(0x01), Checksum([]byte{0xFF, 0x02}))
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":           ModeWearLevel,
		"wear":       ModeWearLevel,
		" Wear ":     ModeWearLevel,
		"sequential": ModeSequential,
		"seq":        ModeSequential,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("random")
	require.Error(t, err)

	assert.Equal(t, "wear", ModeWearLevel.String())
	assert.Equal(t, "sequential", ModeSequential.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestOptions_Allocator(t *testing.T) {
	o := DefaultOptions()
	assert.IsType(t, &WearLeveling{}, o.allocator())

	o.Mode = ModeSequential
	assert.IsType(t, Sequential{}, o.allocator())

	custom := NewWearLeveling(newFixedSource(1))
	o.Allocator = custom
	assert.Same(t, custom, o.allocator())

	assert.NotNil(t, o.logger())
}
