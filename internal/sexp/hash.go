package sexp

import (
	"encoding/hex"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// Canonicalize returns a view of v for hashing: any node whose head equals
// CommutativeMarker has its remaining children sorted by their textual
// encoding. The shape is otherwise preserved. Canonicalization is
// idempotent and never mutates its input.
func Canonicalize(v Value) Value {
	list, ok := v.(List)
	if !ok || len(list) == 0 {
		return v
	}
	out := make(List, len(list))
	for i, c := range list {
		out[i] = Canonicalize(c)
	}
	if head, ok := list[0].(Symbol); ok && head == CommutativeMarker {
		rest := out[1:]
		sort.SliceStable(rest, func(i, j int) bool {
			return Encode(rest[i]) < Encode(rest[j])
		})
	}
	return out
}

// Hash computes the 128-bit content hash of v: BLAKE2b-256 over the
// canonical textual encoding, truncated to 16 bytes and hex-encoded. Hash
// values are persisted in manifests and compared across runs, so both the
// digest and the encoding are fixed.
func Hash(v Value) string {
	return HashBytes([]byte(Encode(Canonicalize(v))))
}

// HashBytes is the raw digest primitive behind Hash, exposed for hashing
// already-serialized artifacts (the proof tree, seed stages).
func HashBytes(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16])
}
