package wear

import "errors"

var (
	// ErrNoRecord indicates no valid record carries the marker. This is the
	// legitimate empty-store state, not a failure of the device.
	ErrNoRecord = errors.New("wear: no matching record")

	// ErrInsufficientSpace indicates the record does not fit in the pool.
	ErrInsufficientSpace = errors.New("wear: record does not fit in pool")

	// ErrPayloadTooLarge indicates a payload the 16-bit size field cannot describe.
	ErrPayloadTooLarge = errors.New("wear: payload larger than 65535 bytes")

	// ErrPoolLocked indicates an attempt to move the pool after a write.
	ErrPoolLocked = errors.New("wear: pool is locked after the first write")

	// ErrInvalidPool indicates pool bounds outside the device.
	ErrInvalidPool = errors.New("wear: invalid pool")

	// ErrWindowTooSmall indicates a scan window not larger than the marker.
	ErrWindowTooSmall = errors.New("wear: scan window must be larger than the marker")
)
