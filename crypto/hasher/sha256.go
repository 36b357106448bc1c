package hasher

import (
	"hash"

	"github.com/minio/sha256-simd"
)

// SHA256Hasher is the identity of the default hashing algorithm.
const SHA256Hasher = "SHA-256"

func init() {
	RegisterHasher(SHA256Hasher, NewSHA256)
}

// NewSHA256 returns a SHA-256 tree hasher.
func NewSHA256() TreeHasher {
	return &treeHasher{
		id:      SHA256Hasher,
		newHash: func() hash.Hash { return sha256.New() },
	}
}

// Default returns the tree hasher used when the caller does not
// provide one.
func Default() TreeHasher {
	return NewSHA256()
}
