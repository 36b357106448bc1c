package merkletree

import "github.com/vpaliy/merklelib/utils"

// Side is the position of a node relative to its parent.
type Side int

const (
	// Left marks a node held in its parent's left slot.
	Left Side = iota
	// Right marks a node held in its parent's right slot.
	Right
	// Root marks the node without a parent.
	Root
)

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "root"
	}
}

// merkleNode is either a real tree node or the padding sentinel.
type merkleNode interface {
	isPadding() bool
}

// treeNode is a real node of the tree. Its hash commits to the
// subtree below it: a leaf's hash is HashLeaf(item), an interior
// node's hash follows the concatenation rule over its children.
// The parent pointer is a back-reference used only for upward
// traversal.
type treeNode struct {
	hash   []byte
	left   merkleNode
	right  merkleNode
	parent *treeNode
}

// paddingNode stands in for a missing right sibling on a level with
// an odd node count. It carries no hash and is never dereferenced for
// one: concatenation with padding takes the real child's hash
// unchanged.
type paddingNode struct{}

// pad is the single padding sentinel shared by the whole package.
var pad = &paddingNode{}

var _ merkleNode = (*treeNode)(nil)
var _ merkleNode = (*paddingNode)(nil)

func (*treeNode) isPadding() bool    { return false }
func (*paddingNode) isPadding() bool { return true }

// side derives the node's position by comparing it against its
// parent's child slots.
func (n *treeNode) side() Side {
	switch {
	case n.parent == nil:
		return Root
	case n.parent.left == merkleNode(n):
		return Left
	default:
		return Right
	}
}

// sibling returns the other child of the node's parent, which may be
// the padding sentinel. It returns nil for the root.
func (n *treeNode) sibling() merkleNode {
	parent := n.parent
	if parent == nil {
		return nil
	}
	if parent.left == merkleNode(n) {
		return parent.right
	}
	return parent.left
}

// Node is a read-only view of a tree node for renderers and
// exporters. It exposes only the displayable hash and the left/right
// children; padding children and absent children are both nil.
type Node interface {
	// HexHash returns the node's hash in hexadecimal form.
	HexHash() string
	// Left returns the left child view, or nil.
	Left() Node
	// Right returns the right child view, or nil.
	Right() Node
}

type nodeView struct {
	n *treeNode
}

var _ Node = (*nodeView)(nil)

func (v *nodeView) HexHash() string {
	return utils.ToHex(v.n.hash)
}

func (v *nodeView) Left() Node {
	if child, ok := v.n.left.(*treeNode); ok {
		return &nodeView{child}
	}
	return nil
}

func (v *nodeView) Right() Node {
	if child, ok := v.n.right.(*treeNode); ok {
		return &nodeView{child}
	}
	return nil
}
