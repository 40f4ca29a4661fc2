package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/layout"
)

func Test_SplitConservesSize(t *testing.T) {
	h := newTestHeap(t)

	free := freeBlocks(h)
	require.Len(t, free, 1)
	var bp, csize int
	for k, v := range free {
		bp, csize = k, v
	}

	ref, _, err := h.Alloc(100)
	require.NoError(t, err)
	require.Equal(t, bp, ref, "first fit should take the only free block")

	asize := blockSize(h, ref)
	free = freeBlocks(h)
	require.Len(t, free, 1, "split should leave one free remainder")
	rem := free[ref+asize]
	assert.Equal(t, csize, asize+rem, "split block sizes must sum to the original")
	assertInvariants(t, h)
}

func Test_SmallRemainderIsAbsorbed(t *testing.T) {
	// Chunk sized so the bootstrap block is exactly MinBlockSize + one word
	// pair short of a second block: the leftover is below the minimum and
	// must be absorbed rather than split.
	h := newTestHeap(t, WithChunkSize(layout.MinBlockSize+layout.DWordSize))

	ref, payload, err := h.Alloc(layout.MinBlockSize - layout.Overhead)
	require.NoError(t, err)
	assert.Equal(t, layout.MinBlockSize+layout.DWordSize, blockSize(h, ref),
		"sub-minimum remainder should be absorbed into the allocation")
	assert.GreaterOrEqual(t, len(payload), layout.MinBlockSize-layout.Overhead)
	assert.Empty(t, freeBlocks(h))
	assertInvariants(t, h)
}

func Test_ForwardCoalescing(t *testing.T) {
	h := newTestHeap(t)

	refA, _ := mustAlloc(t, h, 32, 0x01)
	refB, _ := mustAlloc(t, h, 32, 0x02)
	refC, _ := mustAlloc(t, h, 32, 0x03)

	// Free B first, then A: A must merge forward into B's block.
	require.NoError(t, h.Free(refB))
	require.NoError(t, h.Free(refA))

	free := freeBlocks(h)
	assert.Equal(t, refC-refA, free[refA], "A and B should form one free block")
	assert.Equal(t, 1, h.Stats().CoalesceForward)
	assertInvariants(t, h)
}

func Test_BackwardCoalescing(t *testing.T) {
	h := newTestHeap(t)

	refA, _ := mustAlloc(t, h, 32, 0x01)
	refB, _ := mustAlloc(t, h, 32, 0x02)
	refC, _ := mustAlloc(t, h, 32, 0x03)

	// Free A first, then B: B must merge backward into A's block.
	require.NoError(t, h.Free(refA))
	require.NoError(t, h.Free(refB))

	free := freeBlocks(h)
	assert.Equal(t, refC-refA, free[refA], "A and B should form one free block")
	assert.Equal(t, 1, h.Stats().CoalesceBackward)
	assertInvariants(t, h)
}

func Test_CoalescingIsOrderIndependent(t *testing.T) {
	spans := func(order func(h *Heap, a, b Ref)) map[Ref]int {
		h := newTestHeap(t)
		refA, _ := mustAlloc(t, h, 32, 0x01)
		refB, _ := mustAlloc(t, h, 32, 0x02)
		mustAlloc(t, h, 32, 0x03) // guard against merging into the tail
		order(h, refA, refB)
		assertInvariants(t, h)
		return freeBlocks(h)
	}

	forward := spans(func(h *Heap, a, b Ref) {
		require.NoError(t, h.Free(b))
		require.NoError(t, h.Free(a))
	})
	backward := spans(func(h *Heap, a, b Ref) {
		require.NoError(t, h.Free(a))
		require.NoError(t, h.Free(b))
	})

	assert.Equal(t, forward, backward,
		"freeing adjacent blocks must converge to the same free spans")
}

func Test_BothNeighborCoalescing(t *testing.T) {
	h := newTestHeap(t)

	refA, _ := mustAlloc(t, h, 32, 0x01)
	refB, _ := mustAlloc(t, h, 32, 0x02)
	refC, _ := mustAlloc(t, h, 32, 0x03)
	refD, _ := mustAlloc(t, h, 32, 0x04) // guard

	require.NoError(t, h.Free(refA))
	require.NoError(t, h.Free(refC))
	require.NoError(t, h.Free(refB)) // middle block merges both ways

	free := freeBlocks(h)
	assert.Equal(t, refD-refA, free[refA], "A, B, C should form one free block")
	assertInvariants(t, h)
}

func Test_FreeListMatchesPhysicalState(t *testing.T) {
	h := newTestHeap(t)

	var refs []Ref
	for i := 0; i < 8; i++ {
		ref, _ := mustAlloc(t, h, 40+i*24, byte(i))
		refs = append(refs, ref)
	}
	for i := 0; i < len(refs); i += 2 {
		require.NoError(t, h.Free(refs[i]))
	}

	// Check() verifies list membership against the physical chain and that
	// no two adjacent blocks are both free.
	assertInvariants(t, h)
}
