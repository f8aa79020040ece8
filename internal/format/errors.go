package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrMarkerLength indicates a marker that does not fit the fixed marker width.
	ErrMarkerLength = errors.New("format: marker length")
	// ErrMarkerEncoding indicates marker text with characters outside Windows-1252.
	ErrMarkerEncoding = errors.New("format: marker not representable")
	// ErrPayloadSize indicates a payload longer than the 16-bit size field allows.
	ErrPayloadSize = errors.New("format: payload too large")
)
