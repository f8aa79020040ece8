package mmfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wearkit/internal/testutil"
)

func TestMap(t *testing.T) {
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42}
	path := testutil.WriteImage(t, "map.bin", want)

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	assert.Equal(t, want, data)
	require.NoError(t, cleanup())
	require.NoError(t, cleanup(), "second cleanup is a no-op")
}

func TestMap_ZeroLength(t *testing.T) {
	path := testutil.WriteImage(t, "empty.bin", nil)
	data, cleanup, err := Map(path)
	require.NoError(t, err)
	assert.Empty(t, data)
	require.NotNil(t, cleanup)
	require.NoError(t, cleanup())
}

func TestMap_Missing(t *testing.T) {
	_, _, err := Map(t.TempDir() + "/missing.bin")
	require.Error(t, err)
}
