// Package arena provides the growable memory regions the heap allocator
// manages. A provider hands out one contiguous region that only ever grows:
// each successful Grow appends to the end of the region and returns the
// offset of the new bytes, so previously returned offsets stay valid for the
// life of the arena.
package arena

import "errors"

var (
	// ErrLimit indicates a grow request would exceed the arena's capacity.
	ErrLimit = errors.New("arena: size limit exceeded")

	// ErrGrowSize indicates a non-positive grow request.
	ErrGrowSize = errors.New("arena: grow size must be positive")

	// ErrUnsupported indicates the provider is not available on this platform.
	ErrUnsupported = errors.New("arena: not supported on this platform")
)

// Provider is a monotonic bump region. Implementations must guarantee that
// offsets returned by Grow are strictly increasing, that a failed Grow
// leaves the region unchanged, and that the region never moves or shrinks
// in offset space. The backing slice returned by Bytes may be reallocated
// across Grow calls; only offsets are stable.
type Provider interface {
	// Grow extends the region by exactly n bytes and returns the offset of
	// the newly added bytes. The new bytes are zeroed.
	Grow(n int) (int, error)

	// Bytes returns the current contents of the whole region. Valid until
	// the next Grow call.
	Bytes() []byte

	// Bounds returns the valid offset range [lo, hi) of the region.
	Bounds() (lo, hi int)
}
