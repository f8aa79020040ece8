package wear

import "github.com/joshuapare/wearkit/internal/format"

// Checksum returns the 8-bit additive checksum that seals a payload.
func Checksum(payload []byte) uint8 {
	return format.Sum8(payload)
}
