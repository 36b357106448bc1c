// Package blake3 registers a BLAKE3 tree hasher.
// Import it for its side effect:
//
//	import _ "github.com/vpaliy/merklelib/crypto/hasher/blake3"
package blake3

import (
	"hash"

	"github.com/vpaliy/merklelib/crypto/hasher"
	zblake3 "github.com/zeebo/blake3"
)

// BLAKE3Hasher is the identity of the BLAKE3 hashing algorithm.
const BLAKE3Hasher = "BLAKE3"

func init() {
	hasher.RegisterHasher(BLAKE3Hasher, New)
}

// New returns a BLAKE3 tree hasher with a 32-byte output.
func New() hasher.TreeHasher {
	return hasher.FromHash(BLAKE3Hasher, func() hash.Hash { return zblake3.New() })
}
