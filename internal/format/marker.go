package format

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Marker is the fixed-length byte pattern that starts every record. Callers
// pick one marker per logical key.
type Marker [MarkerLen]byte

// ParseMarker encodes text as Windows-1252, one byte per character, and
// NUL-pads it to MarkerLen. Text that encodes to more than MarkerLen bytes, or
// that contains characters Windows-1252 cannot represent, is rejected.
func ParseMarker(text string) (Marker, error) {
	var m Marker
	if text == "" {
		return m, fmt.Errorf("empty marker: %w", ErrMarkerLength)
	}
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return m, fmt.Errorf("marker %q: %w", text, ErrMarkerEncoding)
	}
	if len(encoded) > MarkerLen {
		return m, fmt.Errorf("marker %q is %d bytes, max %d: %w", text, len(encoded), MarkerLen, ErrMarkerLength)
	}
	copy(m[:], encoded)
	return m, nil
}

// ParseMarkerHex decodes exactly MarkerLen bytes of hex.
func ParseMarkerHex(s string) (Marker, error) {
	var m Marker
	raw, err := hex.DecodeString(s)
	if err != nil {
		return m, fmt.Errorf("marker hex: %w", err)
	}
	return MarkerFromBytes(raw)
}

// MarkerFromBytes copies b into a Marker. b must be exactly MarkerLen bytes.
func MarkerFromBytes(b []byte) (Marker, error) {
	var m Marker
	if len(b) != MarkerLen {
		return m, fmt.Errorf("marker is %d bytes, want %d: %w", len(b), MarkerLen, ErrMarkerLength)
	}
	copy(m[:], b)
	return m, nil
}

// String decodes the marker as Windows-1252 with trailing NUL padding removed.
// Markers that are not text fall back to hex.
func (m Marker) String() string {
	trimmed := bytes.TrimRight(m[:], "\x00")
	if bytes.IndexByte(trimmed, 0) >= 0 || !printable(trimmed) {
		return m.Hex()
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(trimmed)
	if err != nil {
		return m.Hex()
	}
	return string(decoded)
}

// Hex returns the marker bytes as lowercase hex.
func (m Marker) Hex() string {
	return hex.EncodeToString(m[:])
}

func printable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c == 0x7F {
			return false
		}
	}
	return true
}
