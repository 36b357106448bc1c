// Package sha3 registers a SHA3-256 tree hasher.
// Import it for its side effect:
//
//	import _ "github.com/vpaliy/merklelib/crypto/hasher/sha3"
package sha3

import (
	"hash"

	"github.com/vpaliy/merklelib/crypto/hasher"
	xsha3 "golang.org/x/crypto/sha3"
)

// SHA3Hasher is the identity of the SHA3-256 hashing algorithm.
const SHA3Hasher = "SHA3-256"

func init() {
	hasher.RegisterHasher(SHA3Hasher, New)
}

// New returns a SHA3-256 tree hasher.
func New() hasher.TreeHasher {
	return hasher.FromHash(SHA3Hasher, func() hash.Hash { return xsha3.New256() })
}
