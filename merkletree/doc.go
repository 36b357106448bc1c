/*
Package merkletree implements a Merkle hash tree over an ordered
sequence of items, and the two proof protocols built on top of it.

The tree is binary: each leaf holds the domain-separated hash of one
input item and each interior node holds the hash of the concatenation
of its children's hashes, so the root hash commits to the entire
sequence. When a level holds an odd number of nodes, a padding node
completes the last pair; concatenation with padding takes the real
child's hash unchanged, which keeps appends cheap and the leaf order
canonical.

The tree supports incremental growth (Append adds one leaf and rehashes
only the path to the root, mirroring a binary counter increment) and
point updates (Update replaces a leaf hash and rehashes the same path,
without changing the topology).

Two proof protocols are provided. An audit proof (GetProof) shows that
a given leaf belongs to a tree with a given root: it lists the sibling
hash and side at each level between the leaf and the root, and
VerifyInclusion replays it against a trusted root hash. A consistency
proof (VerifyConsistency) shows that an older tree's committed state
is a prefix of a newer tree's leaf sequence, by decomposing the old
size into powers of two and recombining the covering subtree roots.
Both verifiers are total over untrusted input: malformed proof data
yields false, never a panic or an error.

A MerkleTree is not safe for concurrent mutation; callers must
serialize Append, Update, Extend and Clear externally. The pure
verification functions only read proof objects and root hashes and may
run concurrently against a tree that is not being mutated.
*/
package merkletree
