// Package buf contains helpers for endian-safe word access over raw byte
// buffers.
package buf

import "encoding/binary"

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// PutU64LE writes a little-endian uint64 into b. No-op when b is too short.
func PutU64LE(b []byte, v uint64) {
	if len(b) < 8 {
		return
	}
	binary.LittleEndian.PutUint64(b, v)
}
