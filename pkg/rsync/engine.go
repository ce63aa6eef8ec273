package rsync

import (
	"github.com/pkg/errors"
)

const (
	// DefaultChunkSize is the chunk size used by operations when the caller
	// doesn't specify one.
	DefaultChunkSize = 10
)

// Engine provides rsync functionality over in-memory buffers. It is designed
// to be re-used across operations to avoid heavy allocation of scratch
// storage. An Engine is not safe for concurrent usage, but it maintains no
// state between operations: given the same inputs, every operation produces
// byte-identical outputs.
type Engine struct {
	// hashes is a re-usable vector that holds the rolling hash at every
	// window position of a delta target.
	hashes []uint64
}

// NewEngine creates a new rsync engine.
func NewEngine() *Engine {
	return &Engine{}
}

// hashesWithSize lazily allocates the engine's rolling hash vector, ensuring
// that it is the required size. The capacity of the vector is retained
// between calls to avoid allocations if possible.
func (e *Engine) hashesWithSize(size uint64) []uint64 {
	if uint64(cap(e.hashes)) >= size {
		return e.hashes[:size]
	}
	e.hashes = make([]uint64, size)
	return e.hashes
}

// chunkCount computes the number of chunks that a basis of the specified
// length divides into under the specified chunk size.
func chunkCount(length, chunkSize uint64) uint64 {
	count := length / chunkSize
	if length%chunkSize != 0 {
		count += 1
	}
	return count
}

// Signature computes the signature of a basis under the specified chunk size.
// The basis is partitioned into consecutive chunks of chunkSize bytes (the
// final chunk may be shorter) and each chunk is described by a rolling hash
// and a strong hash, stored in positional lock-step. An empty basis yields an
// empty signature. The chunk size must be non-0.
func (e *Engine) Signature(basis []byte, chunkSize uint64) (*Signature, error) {
	// Verify that the chunk size is sane.
	if chunkSize == 0 {
		return nil, errors.New("chunk size must be non-0")
	}

	// Compute the expected number of chunks and create the result.
	count := chunkCount(uint64(len(basis)), chunkSize)
	result := &Signature{
		StrongHashes:  make([]uint64, 0, count),
		RollingHashes: make([]uint64, 0, count),
	}

	// Hash chunks. The rolling hash for each chunk is computed by
	// initializing a fresh state over the chunk's bytes, so a short final
	// chunk is hashed over its actual length. The end computation watches
	// for unsigned overflow with enormous chunk sizes.
	for start, length := uint64(0), uint64(len(basis)); start < length; {
		end := start + chunkSize
		if end > length || end < start {
			end = length
		}
		chunk := basis[start:end]
		result.StrongHashes = append(result.StrongHashes, StrongHash(chunk))
		result.RollingHashes = append(result.RollingHashes, NewRollingHash(chunk).Sum64())
		start = end
	}

	// Success.
	return result, nil
}

// Deltafy computes the delta that reproduces the target from a basis
// described by the specified signature. The signature must have been computed
// with the same chunk size.
//
// The target is scanned left to right with a window of chunkSize bytes. At
// each position, the window's rolling hash is looked up in an index built
// from the signature; on a hit, the match is confirmed by strong hash. A
// confirmed match emits a block index token and advances the scan past the
// matched window. Anything else emits the window's leading byte as a literal
// token and advances the scan by one. Bytes past the last full window are
// always emitted as literals, since a partial window can't match any basis
// chunk. The scan is linear in the target length: the rolling hash is updated
// in constant time per position and strong hashes are only computed on
// rolling hash hits.
func (e *Engine) Deltafy(target []byte, signature *Signature, chunkSize uint64) (*Delta, error) {
	// Verify that the chunk size is sane.
	if chunkSize == 0 {
		return nil, errors.New("chunk size must be non-0")
	}

	// Verify that the signature is sane. We don't control its value, and if
	// its invariants are broken it can cause this method to behave strangely.
	if err := signature.ensureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid signature")
	}

	// Build an index mapping rolling hashes to chunk indices. If multiple
	// chunks share a rolling hash, the later one wins. This can hide a match
	// whose strong hash would have confirmed against an earlier chunk, which
	// costs compression but never correctness.
	index := make(map[uint64]uint64, len(signature.RollingHashes))
	for i, h := range signature.RollingHashes {
		index[h] = uint64(i)
	}

	// Precompute the rolling hash at every window position of the target. If
	// the target is shorter than a single window, there are no positions and
	// the scan below degenerates to the trailing literal loop.
	length := uint64(len(target))
	var hashes []uint64
	if chunkSize <= length {
		hashes = e.hashesWithSize(length - chunkSize + 1)
		state := NewRollingHash(target[:chunkSize])
		hashes[0] = state.Sum64()
		for position := uint64(1); position+chunkSize <= length; position++ {
			state.Roll(target[position-1], target[position+chunkSize-1])
			hashes[position] = state.Sum64()
		}
	}

	// Scan for matches.
	result := &Delta{}
	cursor := uint64(0)
	for cursor+chunkSize <= length {
		if chunk, ok := index[hashes[cursor]]; ok &&
			signature.StrongHashes[chunk] == StrongHash(target[cursor:cursor+chunkSize]) {
			result.Content = append(result.Content, Token{Kind: TokenBlockIndex, Index: chunk})
			cursor += chunkSize
		} else {
			result.Content = append(result.Content, Token{Kind: TokenByteLiteral, Literal: target[cursor]})
			cursor += 1
		}
	}

	// Emit any trailing bytes as literals.
	for ; cursor < length; cursor++ {
		result.Content = append(result.Content, Token{Kind: TokenByteLiteral, Literal: target[cursor]})
	}

	// Success.
	return result, nil
}

// Patch applies a delta to a basis, reproducing the file from which the delta
// was computed. The chunk size must match the one used to compute the
// signature underlying the delta; this can't be validated from the artifacts
// and is a caller contract. Patching never consults hashes: the delta is the
// sole authority. A block index token that references a chunk beyond the
// basis partition is a fatal error.
func (e *Engine) Patch(basis []byte, delta *Delta, chunkSize uint64) ([]byte, error) {
	// Verify that the chunk size is sane.
	if chunkSize == 0 {
		return nil, errors.New("chunk size must be non-0")
	}

	// Verify that the delta is sane.
	if err := delta.ensureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid delta")
	}

	// Partition the basis exactly as the signature computation did.
	length := uint64(len(basis))
	count := chunkCount(length, chunkSize)

	// Compute the reconstructed length so that the output can be allocated
	// in a single shot, validating block references along the way.
	var size uint64
	for _, token := range delta.Content {
		if token.Kind == TokenBlockIndex {
			if token.Index >= count {
				return nil, errors.Errorf("block index out of range (%d >= %d)", token.Index, count)
			}
			end := token.Index*chunkSize + chunkSize
			if end > length {
				end = length
			}
			size += end - token.Index*chunkSize
		} else {
			size += 1
		}
	}

	// Reassemble.
	result := make([]byte, 0, size)
	for _, token := range delta.Content {
		if token.Kind == TokenBlockIndex {
			start := token.Index * chunkSize
			end := start + chunkSize
			if end > length {
				end = length
			}
			result = append(result, basis[start:end]...)
		} else {
			result = append(result, token.Literal)
		}
	}

	// Success.
	return result, nil
}
