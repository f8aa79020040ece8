// Package testutil creates EEPROM image files for tests.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/wearkit/internal/format"
)

// ErasedByte is the value of every byte in a freshly created image.
const ErasedByte = format.ErasedByte

// WriteImage writes data to name inside a per-test temporary directory and
// returns the path.
func WriteImage(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}
	return path
}

// ErasedImage writes an image of size bytes in the erased state.
func ErasedImage(t testing.TB, size int) string {
	t.Helper()
	return WriteImage(t, "erased.img", bytes.Repeat([]byte{ErasedByte}, size))
}

// CopyImage copies the image at src into a temporary directory under name, so
// a test can modify it freely.
// Calls t.Skip if src does not exist.
//
// Example:
//
//	path := testutil.CopyImage(t, golden, "work.img")
func CopyImage(t testing.TB, src, name string) string {
	t.Helper()

	srcFile, err := os.Open(src)
	if err != nil {
		t.Skipf("Test image not found: %v", err)
	}
	defer srcFile.Close()

	dst := filepath.Join(t.TempDir(), name)
	dstFile, err := os.Create(dst)
	if err != nil {
		t.Fatalf("Failed to create temp image: %v", err)
	}
	defer dstFile.Close()

	if _, copyErr := io.Copy(dstFile, srcFile); copyErr != nil {
		t.Fatalf("Failed to copy image: %v", copyErr)
	}
	return dst
}
