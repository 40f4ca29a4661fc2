// Package layout defines the physical block encoding used by the heap
// allocator: boundary tags, alignment rules, and neighbor traversal over a
// raw byte arena.
//
// Every block, free or allocated, is framed by a header word and a footer
// word that both encode (size, allocated). Block references are payload
// offsets into the arena; the header sits one word before the payload and
// the footer one double word before the block end:
//
//	Offset        Size  Description
//	bp - 8        8     Header: size | allocated bit
//	bp            ...   Payload (free blocks: prev/next free-list links)
//	bp + size-16  8     Footer: identical to header
//
// Sizes include the header and footer and are always multiples of the
// 16-byte alignment granularity, so the low four bits of a tag word are
// available for the allocation flag.
package layout

const (
	// WordSize is the tag word size in bytes. Headers, footers, and
	// free-list links are each one word.
	WordSize = 8

	// DWordSize is a double word, the alignment granularity for payload
	// addresses and block sizes.
	DWordSize = 2 * WordSize

	// Alignment is the guaranteed alignment of every payload offset.
	Alignment = DWordSize

	// Overhead is the per-block framing cost: one header plus one footer.
	Overhead = 2 * WordSize

	// MinBlockSize is the smallest legal block: header, two link words,
	// footer, plus a double word of margin, rounded to Alignment.
	MinBlockSize = 6 * WordSize

	// DefaultChunkSize is the default arena extension, in bytes.
	DefaultChunkSize = 1 << 12

	// PrologueRef is the payload offset of the prologue block: one padding
	// word followed by the prologue header.
	PrologueRef = 2 * WordSize

	// InitSize is the arena size needed by the bootstrap layout: padding
	// word, prologue block, epilogue header.
	InitSize = MinBlockSize + 2*WordSize
)

// NoRef marks "no block". Offset 0 is the padding word and never a payload.
const NoRef = 0

const (
	allocBit  = 0x1
	sizeMask  = ^uint64(Alignment - 1)
	alignMask = Alignment - 1
)
