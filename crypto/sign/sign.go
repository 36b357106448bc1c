// Package sign wraps an ed25519 signature scheme. It is used to sign
// published tree roots so that a verifier can attribute a root hash
// to the party that produced it.
package sign

import (
	"crypto/rand"
	"io"

	"golang.org/x/crypto/ed25519"
)

const (
	// PrivateKeySize is the size of a serialized PrivateKey in bytes.
	PrivateKeySize = 64
	// PublicKeySize is the size of a serialized PublicKey in bytes.
	PublicKeySize = 32
	// SignatureSize is the size of a signature in bytes.
	SignatureSize = 64
)

// PrivateKey wraps the underlying ed25519 signing key.
type PrivateKey ed25519.PrivateKey

// PublicKey wraps the underlying ed25519 verification key.
type PublicKey ed25519.PublicKey

// GenerateKey generates a fresh signing key pair.
// If rnd is nil, crypto/rand.Reader will be used.
func GenerateKey(rnd io.Reader) (PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	_, sk, err := ed25519.GenerateKey(rnd)
	return PrivateKey(sk), err
}

// Sign returns a signature on the given message.
func (key PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(key), message)
}

// Public returns the verification key corresponding to key.
func (key PrivateKey) Public() (PublicKey, bool) {
	pk, ok := ed25519.PrivateKey(key).Public().(ed25519.PublicKey)
	return PublicKey(pk), ok
}

// Verify reports whether sig is a valid signature on message
// under pk.
func (pk PublicKey) Verify(message, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pk), message, sig)
}
