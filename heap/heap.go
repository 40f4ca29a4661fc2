package heap

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/internal/layout"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugAlloc = false

// Runtime flag for allocation logging - controlled by HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Ref identifies an allocated block by its payload offset in the arena.
// Refs stay valid until the block is freed; NoRef means "no block".
type Ref = int

// NoRef is the zero Ref. Alloc(0) returns it, Free(NoRef) is a no-op.
const NoRef Ref = layout.NoRef

// Stats holds internal allocator counters, exposed for tests and
// instrumentation.
type Stats struct {
	AllocCalls       int   // Alloc() calls, excluding zero-size no-ops
	FreeCalls        int   // Free() calls, excluding Free(NoRef) no-ops
	ReallocCalls     int   // Total Realloc() calls
	GrowCalls        int   // Arena extensions
	GrowBytes        int64 // Total bytes added to the arena
	Splits           int   // Free blocks split during placement
	CoalesceForward  int   // Merges with the next neighbor
	CoalesceBackward int   // Merges with the previous neighbor
	ReallocInPlace   int   // Reallocs absorbed into the next neighbor
	ReallocMoves     int   // Reallocs that fell back to alloc-copy-free
	BytesAllocated   int64 // Total block bytes handed out (incl. overhead)
	BytesFreed       int64 // Total block bytes reclaimed
}

// Heap is an explicit-free-list allocator over one arena. Not safe for
// concurrent use.
type Heap struct {
	arena    arena.Provider
	freeHead Ref // First free block; the prologue terminates the list
	chunk    int
	onGrow   func(bytes int)
	stats    Stats
}

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithChunkSize sets the default arena extension size in bytes. Values are
// rounded up to the alignment granularity and floored at the minimum block
// size.
func WithChunkSize(n int) Option {
	return func(h *Heap) {
		if n < layout.MinBlockSize {
			n = layout.MinBlockSize
		}
		h.chunk = layout.AlignUp(n)
	}
}

// WithGrowHook installs a callback invoked with the byte count of every
// successful arena extension. Used by tests to observe growth.
func WithGrowHook(fn func(bytes int)) Option {
	return func(h *Heap) { h.onGrow = fn }
}

// New initializes a heap on an empty arena: an alignment padding word, the
// prologue block, the epilogue header, then one default-chunk extension.
// If either arena request fails no usable heap is returned.
func New(p arena.Provider, opts ...Option) (*Heap, error) {
	h := &Heap{
		arena: p,
		chunk: layout.DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(h)
	}

	if _, hi := p.Bounds(); hi != 0 {
		return nil, ErrBadArena
	}
	off, err := p.Grow(layout.InitSize)
	if err != nil {
		return nil, fmt.Errorf("%w: init: %v", ErrArenaExhausted, err)
	}
	if off != 0 {
		return nil, ErrBadArena
	}

	b := p.Bytes()
	// Offset 0 is the padding word, left zero. The prologue is a permanently
	// allocated minimum-size block; its payload words double as the free
	// list's tail sentinel.
	layout.WriteTags(b, layout.PrologueRef, layout.MinBlockSize, true)
	layout.SetPrevFree(b, layout.PrologueRef, layout.NoRef)
	layout.SetNextFree(b, layout.PrologueRef, layout.NoRef)
	epilogue := layout.PrologueRef + layout.MinBlockSize
	layout.WriteHeader(b, epilogue, 0, true)
	h.freeHead = layout.PrologueRef

	if _, err := h.extend(h.chunk / layout.WordSize); err != nil {
		return nil, err
	}
	return h, nil
}

// Alloc returns a block with at least size payload bytes. The returned
// slice aliases the arena and stays valid until the next growth; the Ref
// stays valid until the block is freed. A size of 0 or less is a benign
// no-op returning NoRef.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	if size <= 0 {
		return NoRef, nil, nil
	}
	h.stats.AllocCalls++

	asize := layout.AlignUp(size) + layout.Overhead
	if asize < layout.MinBlockSize {
		asize = layout.MinBlockSize
	}

	bp := h.findFit(asize)
	if bp == NoRef {
		ext := asize
		if ext < h.chunk {
			ext = h.chunk
		}
		debugLogf("Alloc(%d): no fit for %d, extending by %d", size, asize, ext)
		var err error
		bp, err = h.extend(ext / layout.WordSize)
		if err != nil {
			return NoRef, nil, err
		}
	}

	h.place(bp, asize)

	b := h.arena.Bytes()
	placed, _ := layout.ReadHeader(b, bp)
	h.stats.BytesAllocated += int64(placed)
	return bp, b[bp : bp+placed-layout.Overhead], nil
}

// findFit walks the free list in insertion order and returns the first
// block of at least asize bytes, or NoRef. The prologue, being permanently
// allocated, terminates the walk.
func (h *Heap) findFit(asize int) Ref {
	b := h.arena.Bytes()
	for bp := h.freeHead; ; bp = layout.NextFree(b, bp) {
		size, allocated := layout.ReadHeader(b, bp)
		if allocated {
			return NoRef
		}
		if size >= asize {
			return bp
		}
	}
}

// place marks asize bytes of the free block at bp as allocated. When the
// remainder is at least the minimum block size the block is split and the
// tail coalesced back into the free list; otherwise the whole block is
// used.
func (h *Heap) place(bp Ref, asize int) {
	b := h.arena.Bytes()
	csize, _ := layout.ReadHeader(b, bp)
	h.removeFree(bp)

	if csize-asize >= layout.MinBlockSize {
		layout.WriteTags(b, bp, asize, true)
		rem := bp + asize
		layout.WriteTags(b, rem, csize-asize, false)
		h.coalesce(rem)
		h.stats.Splits++
	} else {
		layout.WriteTags(b, bp, csize, true)
	}
}

// extend grows the arena by the given word count, rounded up to an even
// count and floored at the minimum block size. The new region becomes a
// free block whose header overwrites the old epilogue; a fresh epilogue is
// written at the new end. Returns the new block after coalescing with the
// old heap tail.
func (h *Heap) extend(words int) (Ref, error) {
	size := layout.EvenWords(words) * layout.WordSize
	if size < layout.MinBlockSize {
		size = layout.MinBlockSize
	}

	start, err := h.arena.Grow(size)
	if err != nil {
		return NoRef, fmt.Errorf("%w: %v", ErrArenaExhausted, err)
	}
	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(size)

	b := h.arena.Bytes()
	bp := start
	layout.WriteTags(b, bp, size, false)
	layout.WriteHeader(b, bp+size, 0, true) // relocated epilogue

	if logAlloc {
		_, hi := h.arena.Bounds()
		fmt.Fprintf(os.Stderr, "[GROW] #%d: +%d bytes (heap now %d)\n",
			h.stats.GrowCalls, size, hi)
	}
	if h.onGrow != nil {
		h.onGrow(size)
	}
	return h.coalesce(bp), nil
}

// checkRef validates that ref plausibly names a block inside the heap.
func (h *Heap) checkRef(b []byte, ref Ref) error {
	_, hi := h.arena.Bounds()
	if ref <= layout.PrologueRef || ref >= hi || !layout.Aligned(ref) {
		return ErrBadRef
	}
	size, _ := layout.ReadHeader(b, ref)
	if size < layout.MinBlockSize || ref+size-layout.WordSize > hi {
		return ErrBadRef
	}
	return nil
}

// payload returns the usable bytes of the block at bp.
func payload(b []byte, bp Ref) []byte {
	size, _ := layout.ReadHeader(b, bp)
	return b[bp : bp+size-layout.Overhead]
}

// Stats returns a copy of the allocator's counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// debugLogf prints debug messages if debugAlloc is enabled.
func debugLogf(format string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] "+format+"\n", args...)
	}
}
