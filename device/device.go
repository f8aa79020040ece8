// Package device defines the byte-addressable, limited-endurance storage a
// wear-leveled store runs on, plus the implementations wearkit ships: an
// in-memory EEPROM, a file-backed image, a read-only image snapshot, and a
// diagnostic guard.
//
// Devices are driven by a single owner. None of the implementations here are
// safe for concurrent use.
package device

import (
	"errors"
	"fmt"

	"github.com/joshuapare/wearkit/internal/buf"
)

var (
	// ErrOutOfRange indicates an address outside the device or guarded range.
	ErrOutOfRange = errors.New("device: address out of range")
	// ErrWriteBudget indicates a guarded device refused a write past its budget.
	ErrWriteBudget = errors.New("device: write budget exhausted")
	// ErrBitRange indicates a bit number above 7.
	ErrBitRange = errors.New("device: bit number out of range")
	// ErrClosed indicates an operation on a closed device.
	ErrClosed = errors.New("device: closed")
	// ErrReadOnly indicates a write to a read-only device.
	ErrReadOnly = errors.New("device: read-only")
)

// Device is the driver surface the store needs. Errors are reported only for
// addresses outside the driver's own bounds.
type Device interface {
	// Size returns the device capacity in bytes.
	Size() int
	// Read returns the byte at addr.
	Read(addr int) (byte, error)
	// Write stores v at addr unconditionally, consuming a write cycle.
	Write(addr int, v byte) error
	// Update stores v at addr only when it differs from the current value.
	Update(addr int, v byte) error
	// Ready reports whether the device has finished its previous write cycle.
	Ready() bool
}

// RangeReader is implemented by devices that can fill a buffer in one call.
type RangeReader interface {
	ReadRange(addr int, dst []byte) error
}

// RangeUpdater is implemented by devices that can update a span in one call,
// writing only the bytes that differ.
type RangeUpdater interface {
	UpdateRange(addr int, src []byte) error
}

// ReadRange fills dst from addr, using the device's bulk path when it has one.
func ReadRange(d Device, addr int, dst []byte) error {
	if rr, ok := d.(RangeReader); ok {
		return rr.ReadRange(addr, dst)
	}
	if _, err := checkRange(d, addr, len(dst)); err != nil {
		return err
	}
	for i := range dst {
		b, err := d.Read(addr + i)
		if err != nil {
			return err
		}
		dst[i] = b
	}
	return nil
}

// WriteRange writes every byte of src starting at addr.
func WriteRange(d Device, addr int, src []byte) error {
	if _, err := checkRange(d, addr, len(src)); err != nil {
		return err
	}
	for i, b := range src {
		if err := d.Write(addr+i, b); err != nil {
			return err
		}
	}
	return nil
}

// UpdateRange writes the bytes of src that differ from what the device holds,
// so unchanged bytes cost no endurance.
func UpdateRange(d Device, addr int, src []byte) error {
	if ru, ok := d.(RangeUpdater); ok {
		return ru.UpdateRange(addr, src)
	}
	if _, err := checkRange(d, addr, len(src)); err != nil {
		return err
	}
	for i, b := range src {
		if err := d.Update(addr+i, b); err != nil {
			return err
		}
	}
	return nil
}

// Erase fills [addr, addr+n) with the erased value 0xFF.
func Erase(d Device, addr, n int) error {
	if _, err := checkRange(d, addr, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := d.Update(addr+i, 0xFF); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(d Device, addr, n int) (int, error) {
	end, err := buf.CheckRange(0, d.Size(), addr, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return end, nil
}

func checkAddr(size, addr int) error {
	if addr < 0 || addr >= size {
		return fmt.Errorf("%w: 0x%x (size 0x%x)", ErrOutOfRange, addr, size)
	}
	return nil
}
