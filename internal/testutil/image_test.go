package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErasedImage(t *testing.T) {
	path := ErasedImage(t, 32)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 32)
	for _, b := range data {
		assert.Equal(t, byte(ErasedByte), b)
	}
}

func TestCopyImage(t *testing.T) {
	src := WriteImage(t, "src.img", []byte{1, 2, 3})
	dst := CopyImage(t, src, "dst.img")
	assert.NotEqual(t, src, dst)

	require.NoError(t, os.WriteFile(dst, []byte{9}, 0o644))
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data, "source untouched")
}

func TestCopyImage_MissingSkips(t *testing.T) {
	ok := t.Run("inner", func(t *testing.T) {
		CopyImage(t, filepath.Join(t.TempDir(), "missing.img"), "x.img")
		t.Fatal("not skipped")
	})
	assert.True(t, ok)
}
