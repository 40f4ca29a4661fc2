package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/layout"
)

// Violation describes one consistency failure found by Check.
type Violation struct {
	Ref Ref    // Offending block, or NoRef for heap-wide failures
	Msg string
}

func (v Violation) String() string {
	if v.Ref == NoRef {
		return fmt.Sprintf("heap: %s", v.Msg)
	}
	return fmt.Sprintf("block %#x: %s", v.Ref, v.Msg)
}

// Check walks the physical block chain and the free list and reports every
// invariant violation it finds. It never mutates state and is not meant for
// production call paths; tests run it at quiescent points.
//
// Checked invariants:
//   - prologue and epilogue well-formedness, epilogue at the heap end
//   - header/footer agreement for every block
//   - block sizes aligned, at least the minimum, and within bounds (a
//     contiguous walk with consistent sizes also rules out overlap)
//   - no two physically adjacent free blocks (coalescing is exhaustive)
//   - every free-list member is free, links are in bounds, and the list
//     terminates at the prologue
//   - free-list membership count equals the physically free block count
func (h *Heap) Check() []Violation {
	var vs []Violation
	b := h.arena.Bytes()
	lo, hi := h.arena.Bounds()

	psize, palloc := layout.ReadHeader(b, layout.PrologueRef)
	if psize != layout.MinBlockSize || !palloc {
		vs = append(vs, Violation{layout.PrologueRef, "bad prologue header"})
	}

	// Physical chain walk, prologue to epilogue.
	freePhys := 0
	prevFree := false
	bp := layout.PrologueRef
	for {
		size, allocated := layout.ReadHeader(b, bp)
		if size == 0 {
			if !allocated {
				vs = append(vs, Violation{bp, "bad epilogue header"})
			}
			if bp != hi {
				vs = append(vs, Violation{bp, fmt.Sprintf("epilogue at %#x, heap ends at %#x", bp, hi)})
			}
			break
		}
		if !layout.Aligned(bp) {
			vs = append(vs, Violation{bp, "payload not aligned"})
			break
		}
		if size < layout.MinBlockSize || !layout.Aligned(size) {
			vs = append(vs, Violation{bp, fmt.Sprintf("bad block size %d", size)})
			break
		}
		if bp+size > hi {
			vs = append(vs, Violation{bp, "block extends past heap end"})
			break
		}
		fsize, falloc := layout.ReadFooter(b, bp, size)
		if fsize != size || falloc != allocated {
			vs = append(vs, Violation{bp, fmt.Sprintf(
				"header (%d,%v) does not match footer (%d,%v)",
				size, allocated, fsize, falloc)})
		}
		if !allocated {
			freePhys++
			if prevFree {
				vs = append(vs, Violation{bp, "adjacent free blocks not coalesced"})
			}
		}
		prevFree = !allocated
		bp += size
	}

	// Free list walk. The prologue terminates a well-formed list.
	listCount := 0
	maxSteps := hi/layout.MinBlockSize + 2
	for bp := h.freeHead; ; {
		_, allocated := layout.ReadHeader(b, bp)
		if allocated {
			if bp != layout.PrologueRef {
				vs = append(vs, Violation{bp, "free list contains allocated block"})
			}
			break
		}
		listCount++
		if pf := layout.PrevFree(b, bp); pf != layout.NoRef && (pf < lo || pf >= hi) {
			vs = append(vs, Violation{bp, fmt.Sprintf("prev free link %#x out of bounds", pf)})
			break
		}
		nf := layout.NextFree(b, bp)
		if nf != layout.NoRef && (nf < lo || nf >= hi) {
			vs = append(vs, Violation{bp, fmt.Sprintf("next free link %#x out of bounds", nf)})
			break
		}
		if listCount > maxSteps {
			vs = append(vs, Violation{NoRef, "free list does not terminate"})
			break
		}
		bp = nf
	}

	if listCount != freePhys {
		vs = append(vs, Violation{NoRef, fmt.Sprintf(
			"free list has %d members, heap has %d free blocks", listCount, freePhys)})
	}
	return vs
}
