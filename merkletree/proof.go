package merkletree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vpaliy/merklelib/utils"
)

// AuditNode is one step of an audit proof: the sibling hash at one
// level, and the side on which that sibling joins the running hash
// during replay. A Left sibling is hashed before the running hash, a
// Right sibling after it.
type AuditNode struct {
	Hash []byte
	Side Side
}

// AuditProof is an inclusion proof for a single leaf: the sibling
// hashes on the path from the leaf up to, but excluding, the root, in
// leaf-to-root order. A proof is a plain value, independent of any
// live tree; it is meaningful only together with a target leaf and a
// trusted root hash.
type AuditProof struct {
	nodes []AuditNode
}

// NewAuditProof builds a proof from the given nodes, in leaf-to-root
// order.
func NewAuditProof(nodes []AuditNode) *AuditProof {
	return &AuditProof{nodes: nodes}
}

// Nodes returns the proof's nodes in leaf-to-root order.
func (p *AuditProof) Nodes() []AuditNode {
	return p.nodes
}

// Len returns the number of nodes in the proof.
func (p *AuditProof) Len() int {
	return len(p.nodes)
}

// HexNodes returns the proof's sibling hashes, hex-encoded, in
// leaf-to-root order.
func (p *AuditProof) HexNodes() []string {
	hashes := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		hashes[i] = utils.ToHex(n.Hash)
	}
	return hashes
}

// Equal reports whether two proofs contain the same nodes in the same
// order.
func (p *AuditProof) Equal(other *AuditProof) bool {
	if other == nil || len(p.nodes) != len(other.nodes) {
		return false
	}
	for i, n := range p.nodes {
		if n.Side != other.nodes[i].Side ||
			!bytes.Equal(n.Hash, other.nodes[i].Hash) {
			return false
		}
	}
	return true
}

// auditNodeJSON is the wire form of an AuditNode: a hex hash and a
// "left"/"right" side marker.
type auditNodeJSON struct {
	Hash string `json:"hash"`
	Side string `json:"side"`
}

// MarshalJSON encodes the proof as an ordered list of hex hash and
// side pairs.
func (p *AuditProof) MarshalJSON() ([]byte, error) {
	nodes := make([]auditNodeJSON, len(p.nodes))
	for i, n := range p.nodes {
		nodes[i] = auditNodeJSON{
			Hash: utils.ToHex(n.Hash),
			Side: n.Side.String(),
		}
	}
	return json.Marshal(nodes)
}

// UnmarshalJSON decodes a proof encoded by MarshalJSON.
func (p *AuditProof) UnmarshalJSON(data []byte) error {
	var nodes []auditNodeJSON
	if err := json.Unmarshal(data, &nodes); err != nil {
		return err
	}
	decoded := make([]AuditNode, len(nodes))
	for i, n := range nodes {
		var side Side
		switch n.Side {
		case "left":
			side = Left
		case "right":
			side = Right
		default:
			return fmt.Errorf("[merkletree] unknown proof node side %q", n.Side)
		}
		decoded[i] = AuditNode{Hash: utils.FromHex(n.Hash), Side: side}
	}
	p.nodes = decoded
	return nil
}
