//go:build !linux

package physmem

import "errors"

// DevMem is only available on linux, where /dev/mem exposes physical
// memory. The stub keeps cross-platform builds of dependents working.
type DevMem struct{}

var errUnsupported = errors.New("physmem: /dev/mem mapping requires linux")

func OpenDevMem(base uint64, size int) (*DevMem, error) { return nil, errUnsupported }

func (d *DevMem) ReadRange(off, n int) ([]byte, error) { return nil, errUnsupported }
func (d *DevMem) WriteRange(off int, b []byte) error   { return errUnsupported }
func (d *DevMem) Size() int                            { return 0 }
func (d *DevMem) Close() error                         { return nil }
