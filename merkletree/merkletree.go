package merkletree

import (
	"errors"

	"github.com/vpaliy/merklelib/crypto/hasher"
	"github.com/vpaliy/merklelib/utils"
)

var (
	// ErrInvalidTree indicates a nil tree operand passed to an
	// operation that requires a live tree.
	ErrInvalidTree = errors.New("[merkletree] invalid tree")

	// ErrLeafNotFound indicates that an update target is not a leaf
	// of the tree.
	ErrLeafNotFound = errors.New("[merkletree] leaf not found")

	// ErrTreeSize indicates a consistency check against an old size
	// larger than the tree itself.
	ErrTreeSize = errors.New("[merkletree] old tree is larger than the new tree")
)

// MerkleTree is a binary hash tree over an ordered sequence of items.
// The zero value is not usable; use New. A MerkleTree must not be
// mutated concurrently.
type MerkleTree struct {
	hasher hasher.TreeHasher
	root   *treeNode
	// leaves holds every leaf in the order it was built or appended;
	// this order is the tree's canonical left-to-right leaf order.
	leaves []*treeNode
	// lookup maps a leaf hash to its node for proof generation and
	// updates.
	lookup map[string]*treeNode
}

// New builds a tree over the given items. A nil th selects the
// default SHA-256 hasher. An empty item sequence yields an empty
// tree: no root and length zero.
func New(th hasher.TreeHasher, items ...[]byte) *MerkleTree {
	if th == nil {
		th = hasher.Default()
	}
	m := &MerkleTree{
		hasher: th,
		lookup: make(map[string]*treeNode),
	}
	m.build(items)
	return m
}

// build constructs the tree bottom-up: it hashes every item into a
// leaf, then repeatedly pairs the current level left-to-right,
// padding an odd level, until a single node remains.
func (m *MerkleTree) build(items [][]byte) {
	if len(items) == 0 {
		return
	}
	nodes := make([]merkleNode, len(items))
	for i, item := range items {
		leaf := &treeNode{hash: m.hasher.HashLeaf(item)}
		nodes[i] = leaf
		m.track(leaf)
	}
	for len(nodes) > 1 {
		if len(nodes)%2 != 0 {
			nodes = append(nodes, pad)
		}
		level := make([]merkleNode, 0, len(nodes)/2)
		for i := 0; i < len(nodes); i += 2 {
			level = append(level, m.combine(nodes[i], nodes[i+1]))
		}
		nodes = level
	}
	m.root = nodes[0].(*treeNode)
}

// track records a new leaf in the canonical order and in the lookup
// map.
func (m *MerkleTree) track(leaf *treeNode) {
	m.leaves = append(m.leaves, leaf)
	m.lookup[string(leaf.hash)] = leaf
}

// concat applies the concatenation rule to a pair of nodes on one
// level: pairing with padding takes the real child's hash unchanged,
// pairing two real nodes hashes them in left-then-right order.
func (m *MerkleTree) concat(left, right merkleNode) []byte {
	l, lReal := left.(*treeNode)
	r, rReal := right.(*treeNode)
	switch {
	case !lReal:
		return r.hash
	case !rReal:
		return l.hash
	default:
		return m.hasher.HashChildren(l.hash, r.hash)
	}
}

// combine creates the parent for a pair of nodes and wires the child
// back-references.
func (m *MerkleTree) combine(left, right merkleNode) *treeNode {
	parent := &treeNode{
		hash:  m.concat(left, right),
		left:  left,
		right: right,
	}
	if n, ok := left.(*treeNode); ok {
		n.parent = parent
	}
	if n, ok := right.(*treeNode); ok {
		n.parent = parent
	}
	return parent
}

// rehash recomputes every ancestor hash on the path from node to the
// root, bottom-up. It must be called after any change to a node's
// hash before the mutation is considered complete.
func (m *MerkleTree) rehash(node *treeNode) {
	for node != m.root {
		parent := node.parent
		parent.hash = m.concat(parent.left, parent.right)
		node = parent
	}
}

// Append adds one item to the end of the tree without rebuilding it,
// preserving the canonical leaf order. Only the hashes on the path
// from the new leaf to the root are recomputed.
func (m *MerkleTree) Append(item []byte) {
	m.appendLeaf(&treeNode{hash: m.hasher.HashLeaf(item)})
}

// AppendLeafHash appends a leaf whose hash was computed by the
// caller. It is the pre-hashed counterpart of Append.
func (m *MerkleTree) AppendLeafHash(leafHash []byte) {
	m.appendLeaf(&treeNode{hash: append([]byte(nil), leafHash...)})
}

// appendLeaf grows the tree by one leaf. The growth mirrors a binary
// counter increment: padding slots are open bits waiting to be
// filled, and a carry climbs until it finds one.
func (m *MerkleTree) appendLeaf(leaf *treeNode) {
	if len(m.leaves) == 0 {
		m.track(leaf)
		m.root = leaf
		return
	}
	last := m.leaves[len(m.leaves)-1]
	m.track(leaf)

	// a single leaf is its own root
	if last == m.root {
		m.root = m.combine(last, leaf)
		return
	}

	// the last leaf still has an open padding slot next to it
	if last.sibling().isPadding() {
		connector := last.parent
		connector.right = leaf
		leaf.parent = connector
		m.rehash(leaf)
		return
	}

	// the subtree holding last is full: grow the new leaf into a
	// subtree of its own, climbing until an ancestor with an open
	// padding slot is found
	node := m.combine(leaf, pad)
	connector := last.parent
	for connector != m.root {
		if connector.sibling().isPadding() {
			graft := connector.parent
			graft.right = node
			node.parent = graft
			m.rehash(node)
			return
		}
		connector = connector.parent
		node = m.combine(node, pad)
	}
	// no open slot up to the root: the tree gains one level
	m.root = m.combine(connector, node)
}

// Extend appends the given items in order.
func (m *MerkleTree) Extend(items ...[]byte) {
	for _, item := range items {
		m.Append(item)
	}
}

// ExtendTree appends every leaf of other, preserving other's
// canonical leaf order. The leaf hashes are adopted as-is.
func (m *MerkleTree) ExtendTree(other *MerkleTree) {
	if other == nil {
		return
	}
	hashes := other.Leaves()
	for _, h := range hashes {
		m.AppendLeafHash(h)
	}
}

// Update replaces the leaf built from the old item with a leaf built
// from the new item. Both arguments are raw items; callers holding
// precomputed leaf hashes must use UpdateLeafHash instead. The leaf's
// position does not change, only the hashes on its path to the root
// are recomputed. It returns ErrLeafNotFound if old is not a leaf of
// the tree.
func (m *MerkleTree) Update(old, new []byte) error {
	return m.UpdateLeafHash(m.hasher.HashLeaf(old), m.hasher.HashLeaf(new))
}

// UpdateLeafHash is the pre-hashed counterpart of Update: both
// arguments are leaf hashes rather than raw items.
func (m *MerkleTree) UpdateLeafHash(oldHash, newHash []byte) error {
	leaf, ok := m.lookup[string(oldHash)]
	if !ok {
		return ErrLeafNotFound
	}
	delete(m.lookup, string(leaf.hash))
	leaf.hash = append([]byte(nil), newHash...)
	m.lookup[string(leaf.hash)] = leaf
	m.rehash(leaf)
	return nil
}

// GetProof returns the audit proof for the given leaf, which may be
// passed either as its leaf hash or as the raw item. If the leaf is
// not in the tree, GetProof returns an empty proof rather than an
// error; an empty proof verifies only against the trivial root.
func (m *MerkleTree) GetProof(leaf []byte) *AuditProof {
	target, ok := m.lookup[string(leaf)]
	if !ok {
		target, ok = m.lookup[string(m.hasher.HashLeaf(leaf))]
	}
	if !ok {
		return &AuditProof{}
	}
	var nodes []AuditNode
	for node := target; node != m.root; node = node.parent {
		// padding siblings contribute no hash to the replay
		if sib, ok := node.sibling().(*treeNode); ok {
			nodes = append(nodes, AuditNode{
				Hash: append([]byte(nil), sib.hash...),
				Side: sib.side(),
			})
		}
	}
	return &AuditProof{nodes: nodes}
}

// VerifyLeafInclusion checks the given proof for the given leaf
// against this tree's own root and hasher.
func (m *MerkleTree) VerifyLeafInclusion(target []byte, proof *AuditProof) bool {
	return VerifyInclusion(target, proof, m.hasher, m.MerkleRoot())
}

// Extends reports whether this tree is consistent with older: older's
// committed state must be a prefix of this tree's leaf sequence.
func (m *MerkleTree) Extends(older *MerkleTree) (bool, error) {
	if older == nil {
		return false, ErrInvalidTree
	}
	return VerifyConsistency(m, older.MerkleRoot(), older.Len())
}

// MerkleRoot returns the root hash in hexadecimal form, or the empty
// string for an empty tree.
func (m *MerkleTree) MerkleRoot() string {
	if m.root == nil {
		return ""
	}
	return utils.ToHex(m.root.hash)
}

// Root returns a copy of the raw root hash, or nil for an empty tree.
func (m *MerkleTree) Root() []byte {
	if m.root == nil {
		return nil
	}
	return append([]byte(nil), m.root.hash...)
}

// RootNode returns a read-only view of the root for renderers and
// exporters, or nil for an empty tree.
func (m *MerkleTree) RootNode() Node {
	if m.root == nil {
		return nil
	}
	return &nodeView{m.root}
}

// Len returns the number of leaves in the tree.
func (m *MerkleTree) Len() int {
	return len(m.leaves)
}

// Leaves returns copies of the leaf hashes in canonical left-to-right
// order.
func (m *MerkleTree) Leaves() [][]byte {
	hashes := make([][]byte, len(m.leaves))
	for i, leaf := range m.leaves {
		hashes[i] = append([]byte(nil), leaf.hash...)
	}
	return hashes
}

// HexLeaves returns the leaf hashes in canonical order, hex-encoded.
func (m *MerkleTree) HexLeaves() []string {
	hashes := make([]string, len(m.leaves))
	for i, leaf := range m.leaves {
		hashes[i] = utils.ToHex(leaf.hash)
	}
	return hashes
}

// Hasher returns the tree's hasher.
func (m *MerkleTree) Hasher() hasher.TreeHasher {
	return m.hasher
}

// Clear resets the tree to empty. Individual leaves cannot be
// removed.
func (m *MerkleTree) Clear() {
	m.root = nil
	m.leaves = nil
	m.lookup = make(map[string]*treeNode)
}
