// Package format renders Merkle trees for humans: an ASCII tree
// drawing and a generic nested-document JSON export.
//
// The renderers consume only the tree's read-only view (the root node
// and each node's children and displayable hash); they never mutate
// the tree.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vpaliy/merklelib/merkletree"
)

// ErrEmptyTree indicates an export of a tree without a root.
var ErrEmptyTree = errors.New("[format] empty tree")

// Beautify writes an ASCII drawing of the tree to w, one node hash
// per line. An empty tree produces no output.
func Beautify(w io.Writer, tree *merkletree.MerkleTree) {
	if tree == nil {
		return
	}
	BeautifyNode(w, tree.RootNode())
}

// BeautifyNode writes an ASCII drawing of the subtree rooted at node.
func BeautifyNode(w io.Writer, node merkletree.Node) {
	if node == nil {
		return
	}
	fmt.Fprintln(w, node.HexHash())
	render(w, node, "")
}

func render(w io.Writer, node merkletree.Node, prefix string) {
	children := childrenOf(node)
	for i, child := range children {
		connector, fill := "├── ", "│   "
		if i == len(children)-1 {
			connector, fill = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.HexHash())
		render(w, child, prefix+fill)
	}
}

func childrenOf(node merkletree.Node) []merkletree.Node {
	var children []merkletree.Node
	if left := node.Left(); left != nil {
		children = append(children, left)
	}
	if right := node.Right(); right != nil {
		children = append(children, right)
	}
	return children
}

// exportNode is the generic tree-exchange document: a node name and
// its children, nested.
type exportNode struct {
	Name     string        `json:"name"`
	Children []*exportNode `json:"children,omitempty"`
}

func toExportNode(node merkletree.Node) *exportNode {
	e := &exportNode{Name: node.HexHash()}
	for _, child := range childrenOf(node) {
		e.Children = append(e.Children, toExportNode(child))
	}
	return e
}

// Jsonify serializes the tree to a nested JSON document.
// It returns ErrEmptyTree for a tree without a root.
func Jsonify(tree *merkletree.MerkleTree) (string, error) {
	if tree == nil || tree.RootNode() == nil {
		return "", ErrEmptyTree
	}
	out, err := json.MarshalIndent(toExportNode(tree.RootNode()), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Export writes the tree's JSON document to the given file.
func Export(tree *merkletree.MerkleTree, filename string) error {
	doc, err := Jsonify(tree)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(doc), 0644)
}
