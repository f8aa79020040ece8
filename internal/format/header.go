package format

import (
	"fmt"

	"github.com/joshuapare/wearkit/internal/buf"
)

// Header is the fixed-layout prefix of every record. See the layout table in
// consts.go.
type Header struct {
	Marker   Marker
	Checksum uint8
	Size     uint16
}

// NewHeader builds the header sealing payload under marker.
func NewHeader(marker Marker, payload []byte) (Header, error) {
	if len(payload) > MaxPayload {
		return Header{}, fmt.Errorf("header: %d bytes: %w", len(payload), ErrPayloadSize)
	}
	return Header{
		Marker:   marker,
		Checksum: Sum8(payload),
		Size:     uint16(len(payload)),
	}, nil
}

// ParseHeader decodes a header from the first HeaderSize bytes of b.
// The marker bytes are copied verbatim and not otherwise interpreted.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("record header: %w", ErrTruncated)
	}
	var h Header
	copy(h.Marker[:], b[MarkerOffset:MarkerOffset+MarkerLen])
	h.Checksum = b[ChecksumOffset]
	h.Size = buf.U16LE(b[SizeOffset:])
	return h, nil
}

// Put encodes h into the first HeaderSize bytes of b.
func (h Header) Put(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("record header: %w", ErrTruncated)
	}
	copy(b[MarkerOffset:], h.Marker[:])
	b[ChecksumOffset] = h.Checksum
	buf.PutU16LE(b[SizeOffset:], h.Size)
	return nil
}

// Bytes returns the encoded header.
func (h Header) Bytes() [HeaderSize]byte {
	var out [HeaderSize]byte
	_ = h.Put(out[:])
	return out
}

// RecordSize returns the on-device footprint of the record h describes.
func (h Header) RecordSize() int {
	return RecordSize(int(h.Size))
}

// Valid reports whether payload matches the sealed checksum.
func (h Header) Valid(payload []byte) bool {
	return len(payload) == int(h.Size) && Sum8(payload) == h.Checksum
}
