//go:build linux

package physmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DevMem maps a physical address range through /dev/mem. The mapping
// offset must be page-aligned, so the map is widened down to the page
// boundary and the view re-sliced to the requested range.
type DevMem struct {
	f    *os.File
	mmap []byte
	view []byte
}

// OpenDevMem maps size bytes of physical memory starting at base.
// Requires read/write access to /dev/mem.
func OpenDevMem(base uint64, size int) (*DevMem, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size=%d", ErrOutOfRange, size)
	}
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("physmem: open /dev/mem: %w", err)
	}
	pageOff := int(base % uint64(os.Getpagesize()))
	mmap, err := unix.Mmap(int(f.Fd()), int64(base)-int64(pageOff), size+pageOff,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("physmem: mmap base=0x%x size=%d: %w", base, size, err)
	}
	return &DevMem{f: f, mmap: mmap, view: mmap[pageOff : pageOff+size]}, nil
}

func (d *DevMem) ReadRange(off, n int) ([]byte, error) {
	if err := checkRange(len(d.view), off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, d.view[off:])
	return out, nil
}

func (d *DevMem) WriteRange(off int, b []byte) error {
	if err := checkRange(len(d.view), off, len(b)); err != nil {
		return err
	}
	copy(d.view[off:], b)
	return nil
}

func (d *DevMem) Size() int {
	return len(d.view)
}

// Close unmaps the region and releases /dev/mem.
func (d *DevMem) Close() error {
	err := unix.Munmap(d.mmap)
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	d.mmap = nil
	d.view = nil
	return err
}
