package arena

// SliceArena is an append-backed Provider. It is the default arena: portable,
// allocation-cheap, and convenient for tests that want to cap capacity to
// force exhaustion.
//
// The backing array may be reallocated when the slice grows, so callers must
// re-fetch Bytes after every Grow.
type SliceArena struct {
	buf   []byte
	limit int
}

// NewSlice returns a slice-backed arena. A limit of 0 or less means
// unlimited.
func NewSlice(limit int) *SliceArena {
	return &SliceArena{limit: limit}
}

// Grow appends n zeroed bytes and returns their starting offset.
func (a *SliceArena) Grow(n int) (int, error) {
	if n <= 0 {
		return 0, ErrGrowSize
	}
	if a.limit > 0 && len(a.buf)+n > a.limit {
		return 0, ErrLimit
	}
	off := len(a.buf)
	a.buf = append(a.buf, make([]byte, n)...)
	return off, nil
}

// Bytes returns the current region contents.
func (a *SliceArena) Bytes() []byte { return a.buf }

// Bounds returns the valid offset range of the region.
func (a *SliceArena) Bounds() (int, int) { return 0, len(a.buf) }
