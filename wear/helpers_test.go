package wear

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/wearkit/device"
	"github.com/joshuapare/wearkit/internal/format"
)

// fixedSource replays vals in order, cycling.
type fixedSource struct {
	vals []uint64
	i    int
}

func newFixedSource(vals ...uint64) *fixedSource {
	return &fixedSource{vals: vals}
}

func (f *fixedSource) Uint64() uint64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

// countingDevice counts every access; it deliberately has no bulk paths.
type countingDevice struct {
	m      *device.Memory
	reads  int
	writes int
}

func (c *countingDevice) Size() int   { return c.m.Size() }
func (c *countingDevice) Ready() bool { return true }

func (c *countingDevice) Read(addr int) (byte, error) {
	c.reads++
	return c.m.Read(addr)
}

func (c *countingDevice) Write(addr int, v byte) error {
	c.writes++
	return c.m.Write(addr, v)
}

func (c *countingDevice) Update(addr int, v byte) error {
	c.writes++
	return c.m.Update(addr, v)
}

func mustMarker(t testing.TB, text string) format.Marker {
	t.Helper()
	m, err := format.ParseMarker(text)
	require.NoError(t, err)
	return m
}

func newTestStore(t testing.TB, dev device.Device, src Source, mutate ...func(*Options)) *Store {
	t.Helper()
	opts := DefaultOptions()
	opts.Rand = src
	for _, fn := range mutate {
		fn(opts)
	}
	s, err := New(dev, opts)
	require.NoError(t, err)
	return s
}

// placeRecord writes a record directly to the image, bypassing the store.
func placeRecord(t testing.TB, image []byte, addr int, marker format.Marker, payload []byte) {
	t.Helper()
	hdr, err := format.NewHeader(marker, payload)
	require.NoError(t, err)
	require.NoError(t, hdr.Put(image[addr:]))
	copy(image[addr+format.HeaderSize:], payload)
}

func collectCandidates(t testing.TB, s *Store, marker format.Marker) []Candidate {
	t.Helper()
	var out []Candidate
	require.NoError(t, s.Candidates(marker, func(c Candidate) bool {
		out = append(out, c)
		return true
	}))
	return out
}
