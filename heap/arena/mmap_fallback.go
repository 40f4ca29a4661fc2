//go:build !unix

package arena

// MmapArena is unavailable without unix mmap; NewMmap reports
// ErrUnsupported and callers should fall back to NewSlice.
type MmapArena struct{}

// NewMmap is not supported on this platform.
func NewMmap(capacity int) (*MmapArena, error) {
	return nil, ErrUnsupported
}

func (a *MmapArena) Grow(n int) (int, error) { return 0, ErrUnsupported }

func (a *MmapArena) Bytes() []byte { return nil }

func (a *MmapArena) Bounds() (int, int) { return 0, 0 }

func (a *MmapArena) Close() error { return nil }
