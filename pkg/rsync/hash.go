package rsync

import (
	"github.com/cespare/xxhash/v2"
)

const (
	// m is the rolling hash modulus. I think they now recommend that it be
	// the largest prime less than 2^16, but this value is fine as well. It
	// has the advantage that reductions stay correct even when the component
	// accumulators wrap around, because m divides 2^32.
	m = 1 << 16
)

// RollingHash implements the fast checksum detailed on page 55 of the rsync
// thesis. It hashes a fixed-width window of bytes and can be rolled (updated
// without full recomputation) when the window slides one byte to the right.
// The zero value is not usable; construct instances with NewRollingHash. The
// checksum is not theoretically optimal, but it's fine for our purposes: it
// only proposes candidate blocks, which are confirmed by strong hash.
type RollingHash struct {
	// r1 is the first-order component of the checksum.
	r1 uint32
	// r2 is the second-order component of the checksum.
	r2 uint32
	// windowSize is the width of the hashed window. It is fixed at
	// initialization and baked into the r2 weights, so a single state must
	// only ever be rolled across windows of this width.
	windowSize uint64
}

// NewRollingHash initializes a rolling hash state from an initial window of
// bytes. The window's length becomes the (fixed) window width of the state.
func NewRollingHash(window []byte) *RollingHash {
	// Compute hash components.
	size := uint64(len(window))
	var r1, r2 uint32
	for i, b := range window {
		r1 += uint32(b)
		r2 += (uint32(size) - uint32(i)) * uint32(b)
	}

	// Create the state.
	return &RollingHash{
		r1:         r1 % m,
		r2:         r2 % m,
		windowSize: size,
	}
}

// Roll slides the window one byte to the right, removing out (the window's
// previous leading byte) and adding in (the new trailing byte). It runs in
// constant time.
func (h *RollingHash) Roll(out, in byte) {
	h.r1 = (h.r1 - uint32(out) + uint32(in)) % m
	h.r2 = (h.r2 - uint32(h.windowSize)*uint32(out) + h.r1) % m
}

// Sum64 returns the current hash value. The value is always less than 2^32,
// but it is carried as a 64-bit unsigned integer because that is its width in
// serialized signatures.
func (h *RollingHash) Sum64() uint64 {
	return uint64(h.r1 + m*h.r2)
}

// StrongHash computes the strong hash of the specified data. It is the XXH64
// digest of the data, which is deterministic and stable across runs and
// platforms. Like the rolling hash, it is part of the wire contract: both
// ends of a signature/delta exchange must agree on it exactly. It is not
// collision-resistant against adversarial inputs, but for the block sizes in
// play here, equal hashes imply equal blocks in practice.
func StrongHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}
