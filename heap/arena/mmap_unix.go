//go:build unix

package arena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapArena is a Provider backed by one anonymous mapping reserved up front
// with PROT_NONE and committed page by page as the region grows. Because the
// whole reservation is mapped once, the region never moves: Bytes always
// aliases the same virtual addresses, which makes this the closest analogue
// of an sbrk-style break pointer.
type MmapArena struct {
	reserved  []byte
	used      int
	committed int
	pageSize  int
}

// NewMmap reserves capacity bytes of address space. Nothing is committed
// until the first Grow. Close releases the reservation.
func NewMmap(capacity int) (*MmapArena, error) {
	if capacity <= 0 {
		return nil, ErrGrowSize
	}
	data, err := unix.Mmap(-1, 0, capacity, unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", capacity, err)
	}
	return &MmapArena{
		reserved: data,
		pageSize: unix.Getpagesize(),
	}, nil
}

// Grow commits enough pages to cover n more bytes and returns the offset of
// the new region. Fails with ErrLimit when the reservation is exhausted,
// leaving the region unchanged.
func (a *MmapArena) Grow(n int) (int, error) {
	if n <= 0 {
		return 0, ErrGrowSize
	}
	need := a.used + n
	if need > len(a.reserved) {
		return 0, ErrLimit
	}
	if need > a.committed {
		// Commit whole pages; the reservation base is page-aligned, so
		// every slice starting at a committed boundary is too.
		end := (need + a.pageSize - 1) &^ (a.pageSize - 1)
		if end > len(a.reserved) {
			end = len(a.reserved)
		}
		if err := unix.Mprotect(a.reserved[a.committed:end],
			unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("arena: commit: %w", err)
		}
		a.committed = end
	}
	off := a.used
	a.used = need
	return off, nil
}

// Bytes returns the used portion of the reservation. Unlike SliceArena the
// slice base is stable across Grow calls.
func (a *MmapArena) Bytes() []byte { return a.reserved[:a.used] }

// Bounds returns the valid offset range of the region.
func (a *MmapArena) Bounds() (int, int) { return 0, a.used }

// Close unmaps the reservation. The arena must not be used afterwards.
func (a *MmapArena) Close() error {
	if a.reserved == nil {
		return nil
	}
	err := unix.Munmap(a.reserved)
	a.reserved = nil
	a.used = 0
	a.committed = 0
	return err
}
