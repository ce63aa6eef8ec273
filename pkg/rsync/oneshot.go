package rsync

// TODO: Remove these wrappers if the CLI grows enough commands to warrant
// sharing a single engine across operations.

// BytesSignature computes the signature of a basis under the specified chunk
// size using a throwaway engine.
func BytesSignature(basis []byte, chunkSize uint64) (*Signature, error) {
	return NewEngine().Signature(basis, chunkSize)
}

// DeltafyBytes computes the delta that reproduces the target from a basis
// described by the specified signature using a throwaway engine.
func DeltafyBytes(target []byte, signature *Signature, chunkSize uint64) (*Delta, error) {
	return NewEngine().Deltafy(target, signature, chunkSize)
}

// PatchBytes applies a delta to a basis using a throwaway engine.
func PatchBytes(basis []byte, delta *Delta, chunkSize uint64) ([]byte, error) {
	return NewEngine().Patch(basis, delta, chunkSize)
}
