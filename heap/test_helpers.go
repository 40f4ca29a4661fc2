package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/arena"
	"github.com/joshuapare/heapkit/internal/layout"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestHeap builds a heap on an unlimited slice arena.
func newTestHeap(t testing.TB, opts ...Option) *Heap {
	t.Helper()
	h, err := New(arena.NewSlice(0), opts...)
	require.NoError(t, err)
	return h
}

// assertInvariants fails the test if the consistency checker finds anything.
func assertInvariants(t testing.TB, h *Heap) {
	t.Helper()
	for _, v := range h.Check() {
		t.Errorf("invariant violation: %s", v)
	}
}

// mustAlloc allocates and fills the payload with the given byte.
func mustAlloc(t testing.TB, h *Heap, size int, fill byte) (Ref, []byte) {
	t.Helper()
	ref, payload, err := h.Alloc(size)
	require.NoError(t, err)
	require.NotEqual(t, NoRef, ref)
	require.GreaterOrEqual(t, len(payload), size)
	for i := range payload {
		payload[i] = fill
	}
	return ref, payload
}

// blockSize reads the current total size of the block at ref.
func blockSize(h *Heap, ref Ref) int {
	size, _ := layout.ReadHeader(h.arena.Bytes(), ref)
	return size
}

// freeBlocks walks the physical chain and returns payload offset -> size for
// every free block.
func freeBlocks(h *Heap) map[Ref]int {
	b := h.arena.Bytes()
	out := make(map[Ref]int)
	for bp := layout.PrologueRef; ; {
		size, allocated := layout.ReadHeader(b, bp)
		if size == 0 {
			break
		}
		if !allocated {
			out[bp] = size
		}
		bp += size
	}
	return out
}
