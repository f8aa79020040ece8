package device

import "fmt"

// GetBit reports whether bit (0-7) of the byte at addr is set.
func GetBit(d Device, addr, bit int) (bool, error) {
	if bit < 0 || bit > 7 {
		return false, fmt.Errorf("%w: %d", ErrBitRange, bit)
	}
	b, err := d.Read(addr)
	if err != nil {
		return false, err
	}
	return b&(1<<bit) != 0, nil
}

// PutBit sets or clears a single bit. It never rewrites an unchanged byte.
func PutBit(d Device, addr, bit int, value bool) error {
	_, err := UpdateBit(d, addr, bit, value)
	return err
}

// UpdateBit performs the read-modify-write for PutBit and reports whether the
// byte was actually written.
func UpdateBit(d Device, addr, bit int, value bool) (bool, error) {
	if bit < 0 || bit > 7 {
		return false, fmt.Errorf("%w: %d", ErrBitRange, bit)
	}
	in, err := d.Read(addr)
	if err != nil {
		return false, err
	}
	out := in
	if value {
		out |= 1 << bit
	} else {
		out &^= 1 << bit
	}
	if out == in {
		return false, nil
	}
	if err := d.Write(addr, out); err != nil {
		return false, err
	}
	return true, nil
}
