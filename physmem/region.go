package physmem

// Region is an in-memory Window for tests and dry runs. It honors the
// same contract as a hardware mapping: range-checked access, fresh
// copies on read, whole-slice stores on write.
type Region struct {
	b []byte
}

// NewRegion allocates a zeroed region of the given size.
func NewRegion(size int) *Region {
	return &Region{b: make([]byte, size)}
}

func (r *Region) ReadRange(off, n int) ([]byte, error) {
	if err := checkRange(len(r.b), off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.b[off:])
	return out, nil
}

func (r *Region) WriteRange(off int, b []byte) error {
	if err := checkRange(len(r.b), off, len(b)); err != nil {
		return err
	}
	copy(r.b[off:], b)
	return nil
}

func (r *Region) Size() int {
	return len(r.b)
}
