// Package format houses the on-device layout of wear-leveled records. It is
// kept free of any device access so the store, the CLI, and tests can all
// encode and decode headers from plain byte slices.
package format

// Record layout (no padding, size field little-endian on every platform):
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    8    Marker (caller-chosen key, also the scan target)
//	 0x08    1    Checksum: 8-bit additive sum of the payload bytes
//	 0x09    2    Payload size in bytes
//	 0x0B    n    Payload
const (
	// MarkerLen is the fixed marker length K.
	MarkerLen = 8

	MarkerOffset   = 0x00
	ChecksumOffset = 0x08
	SizeOffset     = 0x09

	// HeaderSize is the encoded header length: marker, checksum, size.
	HeaderSize = 0x0B

	// MaxPayload is the largest payload the 16-bit size field can describe.
	MaxPayload = 0xFFFF

	// ErasedByte is the value of an EEPROM cell that has never been written.
	ErasedByte = 0xFF
)

// RecordSize returns the on-device footprint of a record carrying n payload bytes.
func RecordSize(n int) int {
	return HeaderSize + n
}
