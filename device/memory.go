package device

import (
	"github.com/joshuapare/wearkit/internal/buf"
	"github.com/joshuapare/wearkit/internal/format"
)

// Memory is an in-memory EEPROM. New cells hold the erased value 0xFF.
type Memory struct {
	data []byte
}

// NewMemory returns an erased device of size bytes.
func NewMemory(size int) *Memory {
	if size < 0 {
		size = 0
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = format.ErasedByte
	}
	return &Memory{data: data}
}

// NewMemoryFrom wraps an existing image. The slice is used directly.
func NewMemoryFrom(image []byte) *Memory {
	return &Memory{data: image}
}

func (m *Memory) Size() int { return len(m.data) }

func (m *Memory) Ready() bool { return true }

// Bytes exposes the backing image.
func (m *Memory) Bytes() []byte { return m.data }

func (m *Memory) Read(addr int) (byte, error) {
	if err := checkAddr(len(m.data), addr); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

func (m *Memory) Write(addr int, v byte) error {
	if err := checkAddr(len(m.data), addr); err != nil {
		return err
	}
	m.data[addr] = v
	return nil
}

func (m *Memory) Update(addr int, v byte) error {
	if err := checkAddr(len(m.data), addr); err != nil {
		return err
	}
	if m.data[addr] != v {
		m.data[addr] = v
	}
	return nil
}

// ReadRange copies [addr, addr+len(dst)) into dst.
func (m *Memory) ReadRange(addr int, dst []byte) error {
	src, ok := buf.Slice(m.data, addr, len(dst))
	if !ok {
		_, err := checkRange(m, addr, len(dst))
		return err
	}
	copy(dst, src)
	return nil
}
