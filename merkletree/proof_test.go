package merkletree

import (
	"encoding/json"
	"testing"
)

func TestProofAllLeavesAllSizes(t *testing.T) {
	for n := 1; n <= 16; n++ {
		data := items(n)
		m := New(nil, data...)
		root := m.MerkleRoot()
		for i, item := range data {
			proof := m.GetProof(item)
			// raw item form
			if !VerifyInclusion(item, proof, m.Hasher(), root) {
				t.Errorf("Size %d: leaf %d failed to verify as a raw item", n, i)
			}
			// pre-hashed form
			leafHash := m.Hasher().HashLeaf(item)
			if !VerifyInclusion(leafHash, m.GetProof(leafHash), m.Hasher(), root) {
				t.Errorf("Size %d: leaf %d failed to verify as a leaf hash", n, i)
			}
		}
	}
}

func TestProofRejectsMutation(t *testing.T) {
	data := items(8)
	m := New(nil, data...)
	root := m.MerkleRoot()

	for i, item := range data {
		proof := m.GetProof(item)
		mutated := append([]byte(nil), item...)
		mutated[0] ^= 0x01
		if VerifyInclusion(mutated, proof, m.Hasher(), root) {
			t.Errorf("Mutated leaf %d should not verify", i)
		}
	}
}

func TestProofRejectsWrongRoot(t *testing.T) {
	data := items(5)
	m := New(nil, data...)
	other := New(nil, items(6)...)

	proof := m.GetProof(data[2])
	if VerifyInclusion(data[2], proof, m.Hasher(), other.MerkleRoot()) {
		t.Error("Proof should not verify against another tree's root")
	}
}

func TestProofIdempotent(t *testing.T) {
	data := items(9)
	m := New(nil, data...)
	for _, item := range data {
		first, second := m.GetProof(item), m.GetProof(item)
		if !first.Equal(second) {
			t.Fatal("Repeated proofs of an unmutated tree should be equal")
		}
	}
}

func TestProofUnknownLeaf(t *testing.T) {
	m := New(nil, items(4)...)
	proof := m.GetProof([]byte("not-a-leaf"))
	if proof.Len() != 0 {
		t.Fatal("Unknown leaf should yield an empty proof, not an error")
	}
	// an empty proof must fail verification, not crash
	if m.VerifyLeafInclusion([]byte("not-a-leaf"), proof) {
		t.Error("Empty proof should not verify a foreign target")
	}
}

func TestProofNilArguments(t *testing.T) {
	m := New(nil, items(3)...)
	if VerifyInclusion(items(1)[0], nil, m.Hasher(), m.MerkleRoot()) {
		t.Error("A nil proof should never verify")
	}
	if VerifyInclusion(items(1)[0], m.GetProof(items(1)[0]), nil, m.MerkleRoot()) {
		t.Error("A nil hasher should never verify")
	}
}

func TestProofJSONRoundTrip(t *testing.T) {
	data := items(7)
	m := New(nil, data...)
	proof := m.GetProof(data[4])

	encoded, err := json.Marshal(proof)
	if err != nil {
		t.Fatal(err)
	}
	decoded := new(AuditProof)
	if err := json.Unmarshal(encoded, decoded); err != nil {
		t.Fatal(err)
	}
	if !proof.Equal(decoded) {
		t.Error("Proof changed across a JSON round trip")
	}
	// the decoded proof still verifies
	if !VerifyInclusion(data[4], decoded, m.Hasher(), m.MerkleRoot()) {
		t.Error("Decoded proof failed to verify")
	}
}

func TestProofJSONUnknownSide(t *testing.T) {
	malformed := []byte(`[{"hash":"ab","side":"up"}]`)
	if err := json.Unmarshal(malformed, new(AuditProof)); err == nil {
		t.Error("Expected an error for an unknown proof node side")
	}
}

func TestProofEqual(t *testing.T) {
	data := items(6)
	m := New(nil, data...)
	p := m.GetProof(data[0])
	if p.Equal(nil) {
		t.Error("A proof should not equal nil")
	}
	if !p.Equal(p) {
		t.Error("A proof should equal itself")
	}
	if p.Equal(m.GetProof(data[1])) {
		t.Error("Proofs of different leaves should differ")
	}
	if len(p.HexNodes()) != p.Len() {
		t.Error("HexNodes should have one entry per proof node")
	}
}
