package wear

import (
	"github.com/joshuapare/wearkit/device"
	"github.com/joshuapare/wearkit/internal/format"
)

// Record is a located, checksum-valid record.
type Record struct {
	Addr   int
	Header format.Header
}

// PayloadAddr returns the address of the first payload byte.
func (r Record) PayloadAddr() int { return r.Addr + format.HeaderSize }

// Size returns the record's footprint on the device.
func (r Record) Size() int { return r.Header.RecordSize() }

// Candidate is one occurrence of a marker in the pool, valid or not.
type Candidate struct {
	Addr   int
	Header format.Header
	Valid  bool
	// Reason explains a rejection; empty for valid candidates.
	Reason string
}

const (
	reasonHeaderTruncated  = "header crosses pool end"
	reasonPayloadTruncated = "payload crosses pool end"
	reasonChecksum         = "checksum mismatch"
)

// inspect reads and validates the record whose marker starts at addr.
func (s *Store) inspect(addr int) (Candidate, error) {
	c := Candidate{Addr: addr}
	if !s.pool.Contains(addr, format.HeaderSize) {
		c.Reason = reasonHeaderTruncated
		return c, nil
	}

	var raw [format.HeaderSize]byte
	if err := device.ReadRange(s.dev, addr, raw[:]); err != nil {
		return c, err
	}
	hdr, err := format.ParseHeader(raw[:])
	if err != nil {
		return c, err
	}
	c.Header = hdr

	payloadAddr := addr + format.HeaderSize
	if !s.pool.Contains(payloadAddr, int(hdr.Size)) {
		c.Reason = reasonPayloadTruncated
		return c, nil
	}
	sum, err := s.scan.checksumRange(payloadAddr, int(hdr.Size))
	if err != nil {
		return c, err
	}
	if sum != hdr.Checksum {
		c.Reason = reasonChecksum
		return c, nil
	}
	c.Valid = true
	return c, nil
}

// locateIn returns the first valid record for marker found scanning area from
// the given address. Invalid candidates are skipped one byte at a time, since
// a marker-like pattern may begin inside a rejected one.
func (s *Store) locateIn(area Pool, marker format.Marker, from int) (Record, bool, error) {
	for cursor := from; ; {
		addr, ok, err := s.scan.FindMarker(area, cursor, marker)
		if err != nil || !ok {
			return Record{}, false, err
		}
		c, err := s.inspect(addr)
		if err != nil {
			return Record{}, false, err
		}
		if c.Valid {
			return Record{Addr: c.Addr, Header: c.Header}, true, nil
		}
		s.log.Debug("candidate rejected",
			"marker", marker.String(), "addr", addr, "reason", c.Reason)
		cursor = addr + 1
	}
}

// Locate finds the valid record for marker. The scan starts at the cursor
// and wraps to the pool start, so a record is found wherever it lies.
// ErrNoRecord is returned when the pool holds none.
func (s *Store) Locate(marker format.Marker) (Record, error) {
	from := s.cursor
	if from < s.pool.Start || from >= s.pool.End {
		from = s.pool.Start
	}

	rec, ok, err := s.locateIn(s.pool, marker, from)
	if err != nil {
		return Record{}, err
	}
	if !ok && from > s.pool.Start {
		// Markers starting before the cursor.
		head := Pool{Start: s.pool.Start, End: min(from+format.MarkerLen-1, s.pool.End)}
		rec, ok, err = s.locateIn(head, marker, s.pool.Start)
		if err != nil {
			return Record{}, err
		}
	}
	if !ok {
		return Record{}, ErrNoRecord
	}
	s.cursor = rec.Addr
	return rec, nil
}

// Candidates calls fn for every occurrence of marker in the pool, in address
// order, until fn returns false.
func (s *Store) Candidates(marker format.Marker, fn func(Candidate) bool) error {
	for cursor := s.pool.Start; ; {
		addr, ok, err := s.scan.FindMarker(s.pool, cursor, marker)
		if err != nil || !ok {
			return err
		}
		c, err := s.inspect(addr)
		if err != nil {
			return err
		}
		if !fn(c) {
			return nil
		}
		cursor = addr + 1
	}
}
