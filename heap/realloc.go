package heap

import "github.com/joshuapare/heapkit/internal/layout"

// Realloc resizes the block at ref to at least size payload bytes.
//
//   - Realloc(NoRef, n) behaves as Alloc(n).
//   - A size of 0 or less behaves as Free and returns NoRef.
//   - When the block already fits, the same ref is returned unchanged; no
//     shrink-split is performed.
//   - When the next physical block is free and large enough, it is absorbed
//     in place and the original ref stays valid with no data movement.
//   - Otherwise a new block is allocated, the old payload copied, and the
//     old block freed. The copy never reads past the old payload.
func (h *Heap) Realloc(ref Ref, size int) (Ref, []byte, error) {
	if ref == NoRef {
		return h.Alloc(size)
	}
	h.stats.ReallocCalls++

	if size <= 0 {
		if err := h.Free(ref); err != nil {
			return NoRef, nil, err
		}
		return NoRef, nil, nil
	}

	b := h.arena.Bytes()
	if err := h.checkRef(b, ref); err != nil {
		return NoRef, nil, err
	}
	oldSize, allocated := layout.ReadHeader(b, ref)
	if !allocated {
		return NoRef, nil, ErrBadRef
	}

	newSize := layout.AlignUp(size) + layout.Overhead
	if newSize < layout.MinBlockSize {
		newSize = layout.MinBlockSize
	}

	if newSize <= oldSize {
		return ref, payload(b, ref), nil
	}

	// Try absorbing the next physical block in place.
	next := layout.NextBlock(b, ref)
	nsize, nextAlloc := layout.ReadHeader(b, next)
	if !nextAlloc && oldSize+nsize >= newSize {
		h.removeFree(next)
		layout.WriteTags(b, ref, oldSize+nsize, true)
		h.stats.ReallocInPlace++
		return ref, payload(b, ref), nil
	}

	// Fall back to alloc-copy-free. Alloc has already placed the new block;
	// it must not be placed again.
	newRef, newPayload, err := h.Alloc(size)
	if err != nil {
		return NoRef, nil, err
	}
	b = h.arena.Bytes() // Alloc may have grown the arena
	n := oldSize - layout.Overhead
	if n > len(newPayload) {
		n = len(newPayload)
	}
	copy(newPayload, b[ref:ref+n])
	if err := h.Free(ref); err != nil {
		return NoRef, nil, err
	}
	h.stats.ReallocMoves++
	return newRef, newPayload, nil
}
