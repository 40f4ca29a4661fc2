package heap

import "github.com/joshuapare/heapkit/internal/layout"

// Free releases the block at ref and merges it with any free physical
// neighbors. Free(NoRef) is a no-op. A ref that is out of bounds,
// misaligned, or not currently allocated returns ErrBadRef without touching
// the heap.
func (h *Heap) Free(ref Ref) error {
	if ref == NoRef {
		return nil
	}
	h.stats.FreeCalls++

	b := h.arena.Bytes()
	if err := h.checkRef(b, ref); err != nil {
		return err
	}
	size, allocated := layout.ReadHeader(b, ref)
	if !allocated {
		return ErrBadRef
	}

	layout.WriteTags(b, ref, size, false)
	h.coalesce(ref)
	h.stats.BytesFreed += int64(size)
	return nil
}

// coalesce merges the free block at bp with free physical neighbors and
// inserts the single resulting block into the free list. The prologue and
// epilogue are allocated, so the neighbor probes never leave the heap.
// Returns the merged block, which starts at the leftmost participant.
func (h *Heap) coalesce(bp Ref) Ref {
	b := h.arena.Bytes()
	size, _ := layout.ReadHeader(b, bp)
	_, prevAlloc := layout.PrevFooter(b, bp)
	next := layout.NextBlock(b, bp)
	nsize, nextAlloc := layout.ReadHeader(b, next)

	switch {
	case prevAlloc && nextAlloc:
		// Both neighbors in use; the block stands alone.

	case prevAlloc && !nextAlloc:
		h.removeFree(next)
		size += nsize
		layout.WriteTags(b, bp, size, false)
		h.stats.CoalesceForward++

	case !prevAlloc && nextAlloc:
		prev := layout.PrevBlock(b, bp)
		psize, _ := layout.ReadHeader(b, prev)
		h.removeFree(prev)
		size += psize
		bp = prev
		layout.WriteTags(b, bp, size, false)
		h.stats.CoalesceBackward++

	default:
		prev := layout.PrevBlock(b, bp)
		psize, _ := layout.ReadHeader(b, prev)
		h.removeFree(prev)
		h.removeFree(next)
		size += psize + nsize
		bp = prev
		layout.WriteTags(b, bp, size, false)
		h.stats.CoalesceForward++
		h.stats.CoalesceBackward++
	}

	// Exactly one insertion per merge keeps list membership equal to the
	// set of physically free blocks.
	h.insertFree(bp)
	return bp
}
