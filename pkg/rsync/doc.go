// Package rsync provides an in-memory implementation of the rsync algorithm
// as described in Andrew Tridgell's thesis
// (https://www.samba.org/~tridge/phd_thesis.pdf). It computes dual-hash block
// signatures of a basis file, content-matched deltas of an updated file
// against such a signature, and patches a basis with a delta to reproduce the
// updated file. Algorithmic functionality is provided by the Engine type,
// with package-level convenience wrappers for one-shot usage.
package rsync
