package heap

import "github.com/joshuapare/heapkit/internal/layout"

// The free list is a doubly-linked LIFO over the free blocks, threaded
// through their first two payload words. Insertion order carries no size or
// address meaning. The list tail is always the prologue block: it is
// permanently allocated, so walks terminate on its allocation bit, and its
// payload words absorb link writes when the last real member is spliced
// out.

// insertFree pushes the free block at bp onto the front of the list. O(1).
func (h *Heap) insertFree(bp Ref) {
	b := h.arena.Bytes()
	layout.SetNextFree(b, bp, h.freeHead)
	layout.SetPrevFree(b, h.freeHead, bp)
	layout.SetPrevFree(b, bp, layout.NoRef)
	h.freeHead = bp
}

// removeFree splices the block at bp out of the list. O(1). The block must
// currently be a member; callers maintain the exactly-once discipline per
// free/allocate transition.
func (h *Heap) removeFree(bp Ref) {
	b := h.arena.Bytes()
	prev := layout.PrevFree(b, bp)
	next := layout.NextFree(b, bp)
	if prev != NoRef {
		layout.SetNextFree(b, prev, next)
	} else {
		h.freeHead = next
	}
	if next != NoRef {
		layout.SetPrevFree(b, next, prev)
	}
}
