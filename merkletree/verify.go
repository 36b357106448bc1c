package merkletree

import (
	"bytes"
	"math/bits"

	"github.com/vpaliy/merklelib/crypto/hasher"
	"github.com/vpaliy/merklelib/utils"
)

// VerifyInclusion checks that target is a leaf of the tree committed
// to by rootHex. It is a pure function over the proof data and needs
// no live tree.
//
// The target may be passed either as the precomputed leaf hash or as
// the raw item: the replay first assumes the target is pre-hashed and,
// on mismatch, retries once after hashing it as a leaf. Malformed or
// adversarial proof data only ever yields false.
func VerifyInclusion(target []byte, proof *AuditProof, th hasher.TreeHasher, rootHex string) bool {
	if proof == nil || th == nil || len(rootHex) == 0 {
		return false
	}
	root := utils.FromHex(rootHex)
	if bytes.Equal(replay(target, proof.nodes, th), root) {
		return true
	}
	// the caller may have passed the raw item instead of its hash
	return bytes.Equal(replay(th.HashLeaf(target), proof.nodes, th), root)
}

// replay folds the proof nodes over the starting hash in leaf-to-root
// order, placing each sibling on its recorded side.
func replay(start []byte, nodes []AuditNode, th hasher.TreeHasher) []byte {
	acc := append([]byte(nil), start...)
	for _, n := range nodes {
		if n.Side == Left {
			acc = th.HashChildren(n.Hash, acc)
		} else {
			acc = th.HashChildren(acc, n.Hash)
		}
	}
	return acc
}

// VerifyConsistency checks that the older tree whose root hash was
// oldRootHex and whose leaf count was oldSize is a prefix of newTree.
//
// It returns an error only for caller misuse: a nil tree, a negative
// old size, or an old size exceeding the new tree. A new tree whose
// shape is incompatible with the claimed old size is an ordinary
// verification failure and yields false.
func VerifyConsistency(newTree *MerkleTree, oldRootHex string, oldSize int) (bool, error) {
	if newTree == nil {
		return false, ErrInvalidTree
	}
	if oldSize < 0 || oldSize > newTree.Len() {
		return false, ErrTreeSize
	}
	// every tree extends the empty tree
	if oldSize == 0 {
		return true, nil
	}

	oldRoot := utils.FromHex(oldRootHex)
	// identical sizes reduce consistency to root equality
	if oldSize == newTree.Len() {
		return bytes.Equal(oldRoot, newTree.root.hash), nil
	}

	// Decompose the old size in descending powers of two. Each block
	// of 2^k leaves was a complete subtree of the old tree, and must
	// still be a complete subtree of the new one: its root sits
	// exactly k levels above the block's first leaf.
	var blocks []*treeNode
	index, remaining := 0, oldSize
	for remaining > 0 {
		level := bits.Len(uint(remaining)) - 1
		node := climbTo(newTree.leaves[index], level)
		if node == nil {
			// the new tree's shape is incompatible with the claimed
			// old size
			return false, nil
		}
		blocks = append(blocks, node)
		index += 1 << level
		remaining -= 1 << level
	}

	// Fold the block roots right-to-left to reconstruct what the old
	// root must have been.
	acc := blocks[len(blocks)-1].hash
	for i := len(blocks) - 2; i >= 0; i-- {
		acc = newTree.hasher.HashChildren(blocks[i].hash, acc)
	}
	return bytes.Equal(acc, oldRoot), nil
}

// climbTo returns the ancestor exactly level steps above node, or nil
// if the node has no ancestor at that level.
func climbTo(node *treeNode, level int) *treeNode {
	for level > 0 && node != nil {
		node = node.parent
		level--
	}
	return node
}
