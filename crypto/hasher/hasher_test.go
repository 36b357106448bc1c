package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainSeparation(t *testing.T) {
	leaf := []byte("abcdef")

	// An identity function makes the domain separation prefixes
	// directly observable.
	identity, err := New("identity", func(data []byte) []byte { return data })
	require.NoError(t, err)

	assert.Equal(t, append([]byte{LeafIdentifier}, leaf...), identity.HashLeaf(leaf))
	assert.Equal(t,
		append([]byte{NodeIdentifier}, append(leaf, leaf...)...),
		identity.HashChildren(leaf, leaf))
}

func TestNewNilHashFn(t *testing.T) {
	_, err := New("nil", nil)
	assert.ErrorIs(t, err, ErrInvalidHashFn)
}

func TestHexOutputNormalized(t *testing.T) {
	// A hash function returning hexadecimal output must behave
	// exactly like one returning raw bytes.
	hexFn, err := New("sha256-hex", func(data []byte) []byte {
		sum := sha256.Sum256(data)
		return []byte(hex.EncodeToString(sum[:]))
	})
	require.NoError(t, err)

	raw := NewSHA256()
	msg := []byte("normalize me")
	assert.Equal(t, raw.Digest(msg), hexFn.Digest(msg))
	assert.Equal(t, raw.HashLeaf(msg), hexFn.HashLeaf(msg))
	assert.Equal(t, raw.Size(), hexFn.Size())
}

func TestDefaultMatchesStdlibSHA256(t *testing.T) {
	th := Default()
	require.Equal(t, SHA256Hasher, th.ID())
	require.Equal(t, sha256.Size, th.Size())

	want := sha256.Sum256(append([]byte{LeafIdentifier}, []byte("a")...))
	assert.Equal(t, want[:], th.HashLeaf([]byte("a")))
}

func TestRegistry(t *testing.T) {
	th, err := Hasher(SHA256Hasher)
	require.NoError(t, err)
	assert.Equal(t, SHA256Hasher, th.ID())

	_, err = Hasher("no-such-hasher")
	assert.Error(t, err)

	assert.Panics(t, func() {
		RegisterHasher(SHA256Hasher, NewSHA256)
	})
}
