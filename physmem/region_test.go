package physmem

import (
	"bytes"
	"errors"
	"testing"
)

func TestRegionReadWriteRoundTrip(t *testing.T) {
	r := NewRegion(64)
	if r.Size() != 64 {
		t.Fatalf("size: %d", r.Size())
	}
	in := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := r.WriteRange(10, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := r.ReadRange(10, 4)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("read back mismatch: %x", out)
	}
}

func TestRegionReadReturnsFreshCopy(t *testing.T) {
	r := NewRegion(8)
	first, err := r.ReadRange(0, 8)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	first[0] = 0xFF
	second, err := r.ReadRange(0, 8)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if second[0] != 0 {
		t.Fatalf("read result aliases region storage")
	}
}

func TestRegionRangeChecks(t *testing.T) {
	r := NewRegion(16)
	cases := []struct {
		off, n int
	}{
		{-1, 4},
		{0, -1},
		{12, 8},
		{16, 1},
	}
	for _, c := range cases {
		if _, err := r.ReadRange(c.off, c.n); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("read off=%d n=%d: expected ErrOutOfRange, got %v", c.off, c.n, err)
		}
	}
	if err := r.WriteRange(14, []byte{1, 2, 3}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("write past end: expected ErrOutOfRange, got %v", err)
	}
}
