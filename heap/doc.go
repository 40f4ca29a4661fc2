// Package heap implements a dynamic memory allocator over a growable byte
// arena: an explicit-free-list design with boundary tags, first-fit
// placement, and immediate neighbor coalescing.
//
// # Overview
//
// A Heap manages one contiguous region obtained from an arena.Provider. The
// region only ever grows; blocks handed out by Alloc are identified by Ref,
// a stable payload offset into the region, alongside a []byte aliasing the
// payload.
//
// # Block layout
//
// Every block carries a header word and a footer word encoding (size,
// allocated), enabling O(1) traversal in both directions. Free blocks store
// their free-list links in the first two payload words. The heap is bounded
// by an allocated prologue block at the start and a zero-size allocated
// epilogue header at the end, so coalescing never walks off either edge.
// See internal/layout for the exact encoding.
//
// # Placement
//
// Allocation walks the free list in LIFO insertion order and takes the
// first block large enough (first-fit). If the remainder of the chosen
// block is at least the minimum block size the block is split and the tail
// returned to the free list; otherwise the whole block is used. When no
// block fits, the arena is extended by at least the configured chunk size.
//
// # Usage Example
//
//	h, err := heap.New(arena.NewSlice(0))
//	if err != nil {
//	    return err
//	}
//
//	ref, payload, err := h.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(payload, data)
//
//	// Later, release the block
//	err = h.Free(ref)
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must synchronize access
// externally; every operation runs to completion before another may begin.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/heap/arena: growable memory providers
//   - github.com/joshuapare/heapkit/internal/layout: block encoding
package heap
