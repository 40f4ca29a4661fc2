package layout

import "github.com/joshuapare/heapkit/internal/buf"

// Pack encodes a size and an allocation flag into one tag word.
func Pack(size int, allocated bool) uint64 {
	w := uint64(size) & sizeMask
	if allocated {
		w |= allocBit
	}
	return w
}

// Unpack splits a tag word into its size and allocation flag.
func Unpack(w uint64) (size int, allocated bool) {
	return int(w & sizeMask), w&allocBit != 0
}

// Word reads the tag word at off. Out-of-range reads return 0, which
// unpacks to a zero-size allocated=false tag and is rejected by callers.
func Word(b []byte, off int) uint64 {
	if !buf.Has(b, off, WordSize) {
		return 0
	}
	return buf.U64LE(b[off:])
}

// PutWord writes the tag word at off. Out-of-range writes are dropped.
func PutWord(b []byte, off int, w uint64) {
	if !buf.Has(b, off, WordSize) {
		return
	}
	buf.PutU64LE(b[off:], w)
}

// HeaderOff returns the offset of the header word for the block at bp.
func HeaderOff(bp int) int { return bp - WordSize }

// FooterOff returns the offset of the footer word for a block at bp of the
// given total size.
func FooterOff(bp, size int) int { return bp + size - DWordSize }

// ReadHeader decodes the header tag of the block at bp.
func ReadHeader(b []byte, bp int) (size int, allocated bool) {
	return Unpack(Word(b, HeaderOff(bp)))
}

// ReadFooter decodes the footer tag of the block at bp, which must have the
// given total size.
func ReadFooter(b []byte, bp, size int) (fsize int, allocated bool) {
	return Unpack(Word(b, FooterOff(bp, size)))
}

// WriteHeader writes the header tag of the block at bp.
func WriteHeader(b []byte, bp, size int, allocated bool) {
	PutWord(b, HeaderOff(bp), Pack(size, allocated))
}

// WriteTags writes matching header and footer tags for the block at bp.
func WriteTags(b []byte, bp, size int, allocated bool) {
	w := Pack(size, allocated)
	PutWord(b, HeaderOff(bp), w)
	PutWord(b, FooterOff(bp, size), w)
}

// NextBlock returns the payload offset of the physically following block.
func NextBlock(b []byte, bp int) int {
	size, _ := ReadHeader(b, bp)
	return bp + size
}

// PrevBlock returns the payload offset of the physically preceding block,
// derived from that block's footer, which sits immediately before bp's
// header.
func PrevBlock(b []byte, bp int) int {
	size, _ := Unpack(Word(b, bp-DWordSize))
	return bp - size
}

// PrevFooter returns the footer tag of the physically preceding block.
func PrevFooter(b []byte, bp int) (size int, allocated bool) {
	return Unpack(Word(b, bp-DWordSize))
}

// Free-list links live in the first two payload words of a free block. They
// are meaningless for allocated blocks and are overwritten on placement.

// PrevFree reads the previous-free link of the free block at bp.
func PrevFree(b []byte, bp int) int {
	return int(Word(b, bp))
}

// NextFree reads the next-free link of the free block at bp.
func NextFree(b []byte, bp int) int {
	return int(Word(b, bp+WordSize))
}

// SetPrevFree writes the previous-free link of the free block at bp.
func SetPrevFree(b []byte, bp, ref int) {
	PutWord(b, bp, uint64(ref))
}

// SetNextFree writes the next-free link of the free block at bp.
func SetNextFree(b []byte, bp, ref int) {
	PutWord(b, bp+WordSize, uint64(ref))
}
