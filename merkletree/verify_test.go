package merkletree

import "testing"

func TestConsistencyMonotonic(t *testing.T) {
	const n = 16
	data := items(n)
	newTree := New(nil, data...)

	for m := 1; m <= n; m++ {
		older := New(nil, data[:m]...)
		ok, err := VerifyConsistency(newTree, older.MerkleRoot(), m)
		if err != nil {
			t.Fatalf("Old size %d: unexpected error %v", m, err)
		}
		if !ok {
			t.Errorf("Old size %d: a prefix tree should be consistent", m)
		}
	}
}

func TestConsistencyAfterAppends(t *testing.T) {
	data := items(13)
	grown := New(nil, data[:5]...)
	older := New(nil, data[:5]...)
	for _, item := range data[5:] {
		grown.Append(item)
	}
	ok, err := grown.Extends(older)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("A tree grown by appends should extend its former self")
	}
}

func TestConsistencyEqualSizes(t *testing.T) {
	data := items(8)
	m := New(nil, data...)

	ok, err := VerifyConsistency(m, m.MerkleRoot(), m.Len())
	if err != nil || !ok {
		t.Error("A tree should be consistent with itself")
	}

	other := New(nil, items(9)[1:]...)
	ok, err = VerifyConsistency(m, other.MerkleRoot(), m.Len())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Equal sizes with different roots should not be consistent")
	}
}

func TestConsistencyWrongRoot(t *testing.T) {
	data := items(10)
	newTree := New(nil, data...)
	// same size as a real prefix, different content
	forged := New(nil, []byte("x"), []byte("y"), []byte("z"))
	ok, err := VerifyConsistency(newTree, forged.MerkleRoot(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("A forged old root should be rejected")
	}
}

func TestConsistencyRejectsLargerOldTree(t *testing.T) {
	newTree := New(nil, items(4)...)
	older := New(nil, items(7)...)
	if _, err := VerifyConsistency(newTree, older.MerkleRoot(), older.Len()); err != ErrTreeSize {
		t.Error("Expected ErrTreeSize, got", err)
	}
	if _, err := VerifyConsistency(newTree, older.MerkleRoot(), -1); err != ErrTreeSize {
		t.Error("Expected ErrTreeSize for a negative size, got", err)
	}
}

func TestConsistencyNilTree(t *testing.T) {
	if _, err := VerifyConsistency(nil, "", 0); err != ErrInvalidTree {
		t.Error("Expected ErrInvalidTree, got", err)
	}
	m := New(nil, items(2)...)
	if _, err := m.Extends(nil); err != ErrInvalidTree {
		t.Error("Expected ErrInvalidTree, got", err)
	}
}

func TestConsistencyWithEmptyOldTree(t *testing.T) {
	m := New(nil, items(5)...)
	ok, err := VerifyConsistency(m, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("Every tree extends the empty tree")
	}
}

func TestConsistencyNotAPrefix(t *testing.T) {
	data := items(12)
	newTree := New(nil, data...)
	// an "older" tree whose leaves are not a prefix of the new one
	older := New(nil, data[2], data[3], data[4], data[5], data[6])
	ok, err := newTree.Extends(older)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("A non-prefix tree should be rejected")
	}
}

func TestConsistencyIncompatibleShape(t *testing.T) {
	// Hand-wire a degenerate tree whose first leaf has no ancestor at
	// the level the decomposition demands: the check must degrade to
	// false instead of panicking.
	th := New(nil).hasher
	leaves := make([]*treeNode, 5)
	for i := range leaves {
		leaves[i] = &treeNode{hash: th.HashLeaf([]byte{byte(i)})}
	}
	m := &MerkleTree{
		hasher: th,
		root:   &treeNode{hash: []byte("whatever")},
		leaves: leaves,
		lookup: make(map[string]*treeNode),
	}
	ok, err := VerifyConsistency(m, "deadbeef", 4)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("An incompatible tree shape should fail verification")
	}
}

func TestConsistencyAfterUpdateOfSharedLeaf(t *testing.T) {
	data := items(9)
	older := New(nil, data[:6]...)
	newTree := New(nil, data...)
	// mutating a leaf inside the shared prefix breaks consistency
	if err := newTree.Update(data[2], []byte("tampered")); err != nil {
		t.Fatal(err)
	}
	ok, err := newTree.Extends(older)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("A mutated shared prefix should not be consistent")
	}
}
