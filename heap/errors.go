package heap

import "errors"

var (
	// ErrArenaExhausted indicates the arena provider denied a growth
	// request. The failure is terminal for that request; nothing is retried.
	ErrArenaExhausted = errors.New("heap: arena exhausted")

	// ErrBadRef indicates a reference that is not a live allocated block.
	ErrBadRef = errors.New("heap: bad block reference")

	// ErrBadArena indicates the provider handed New a non-empty region.
	ErrBadArena = errors.New("heap: arena must be empty at init")
)
