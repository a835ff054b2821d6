package physmem

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("physmem: range outside mapped region")

// Window is byte-range access over one mapped region. Offsets are
// relative to the region base and may be arbitrarily unaligned.
type Window interface {
	// ReadRange returns a fresh copy of n bytes starting at off.
	ReadRange(off, n int) ([]byte, error)
	// WriteRange stores b at off in one call.
	WriteRange(off int, b []byte) error
	// Size is the mapped region length in bytes.
	Size() int
}

func checkRange(size, off, n int) error {
	if off < 0 || n < 0 || off+n > size {
		return fmt.Errorf("%w: off=%d len=%d region=%d", ErrOutOfRange, off, n, size)
	}
	return nil
}
