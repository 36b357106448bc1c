// Package hasher defines the hashing interface used by the Merkle
// tree implementation, and a registry of named hash algorithms.
//
// Every hash computed over tree contents is domain-separated: leaf
// hashes are prefixed with a 0x00 byte and interior-node hashes with
// a 0x01 byte. The prefix prevents a second preimage attack in which
// an interior node's hash is replayed as a leaf hash or vice versa.
package hasher

import (
	"errors"
	"fmt"
	"hash"

	"github.com/vpaliy/merklelib/utils"
)

const (
	// LeafIdentifier is the domain separation prefix for leaf hashes.
	LeafIdentifier = 0x00

	// NodeIdentifier is the domain separation prefix for interior
	// node hashes.
	NodeIdentifier = 0x01
)

// ErrInvalidHashFn indicates that a nil hash function was supplied
// to New.
var ErrInvalidHashFn = errors.New("[hasher] invalid hash function")

// A HashFn maps an arbitrary byte sequence to its hash value.
// Functions returning a hexadecimal encoding of the hash are
// accepted; their output is normalized to raw bytes.
type HashFn func(data []byte) []byte

// TreeHasher provides the hash functions needed by a Merkle tree:
// a plain digest, and the domain-separated leaf and children hashes.
type TreeHasher interface {
	// ID returns the name of the cryptographic hash function.
	ID() string

	// Size returns the size of the hash output in bytes.
	Size() int

	// Digest hashes all passed byte slices.
	// The passed slices won't be mutated.
	Digest(ms ...[]byte) []byte

	// HashLeaf computes the hash of a leaf as: H(0x00 || data).
	HashLeaf(data []byte) []byte

	// HashChildren computes the hash of an interior node as:
	// H(0x01 || left || right).
	HashChildren(left, right []byte) []byte
}

var hashers = make(map[string]func() TreeHasher)

// RegisterHasher registers a named hasher for use.
// It panics if the name is already taken.
func RegisterHasher(id string, f func() TreeHasher) {
	if _, ok := hashers[id]; ok {
		panic(fmt.Sprintf("RegisterHasher(%v) is already registered", id))
	}
	hashers[id] = f
}

// Hasher returns the registered TreeHasher with the given name.
func Hasher(id string) (TreeHasher, error) {
	if f, ok := hashers[id]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("Hasher(%v) is unknown hasher", id)
}

// treeHasher implements TreeHasher on top of a standard hash.Hash
// constructor. All built-in hashers take this form.
type treeHasher struct {
	id      string
	newHash func() hash.Hash
}

// FromHash builds a TreeHasher from a standard hash.Hash constructor.
// It is intended for packages registering additional hash algorithms.
func FromHash(id string, newHash func() hash.Hash) TreeHasher {
	return &treeHasher{id: id, newHash: newHash}
}

func (th *treeHasher) ID() string {
	return th.id
}

func (th *treeHasher) Size() int {
	return th.newHash().Size()
}

func (th *treeHasher) Digest(ms ...[]byte) []byte {
	h := th.newHash()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

func (th *treeHasher) HashLeaf(data []byte) []byte {
	return th.Digest([]byte{LeafIdentifier}, data)
}

func (th *treeHasher) HashChildren(left, right []byte) []byte {
	return th.Digest([]byte{NodeIdentifier}, left, right)
}

// customHasher implements TreeHasher on top of a user-supplied
// hash function.
type customHasher struct {
	id   string
	fn   HashFn
	size int
}

// New wraps a user-supplied hash function in a TreeHasher.
// It returns ErrInvalidHashFn if fn is nil.
//
// If fn returns the hexadecimal encoding of the hash instead of its
// raw bytes, the output is decoded at this boundary so that all
// internal hash comparisons operate on raw bytes.
func New(id string, fn HashFn) (TreeHasher, error) {
	if fn == nil {
		return nil, ErrInvalidHashFn
	}
	ch := &customHasher{id: id, fn: fn}
	ch.size = len(ch.Digest())
	return ch, nil
}

func (ch *customHasher) ID() string {
	return ch.id
}

func (ch *customHasher) Size() int {
	return ch.size
}

func (ch *customHasher) Digest(ms ...[]byte) []byte {
	var data []byte
	for _, m := range ms {
		data = append(data, m...)
	}
	out := ch.fn(data)
	if utils.IsHex(out) {
		return utils.FromHex(string(out))
	}
	return append([]byte(nil), out...)
}

func (ch *customHasher) HashLeaf(data []byte) []byte {
	return ch.Digest([]byte{LeafIdentifier}, data)
}

func (ch *customHasher) HashChildren(left, right []byte) []byte {
	return ch.Digest([]byte{NodeIdentifier}, left, right)
}
