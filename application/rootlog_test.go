package application

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpaliy/merklelib/crypto/sign"
	"github.com/vpaliy/merklelib/kv/leveldbkv"
	"github.com/vpaliy/merklelib/merkletree"
)

func testRootLog(t *testing.T) *RootLog {
	t.Helper()
	db, err := leveldbkv.OpenDB(filepath.Join(t.TempDir(), "rootlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sk, err := sign.GenerateKey(nil)
	require.NoError(t, err)
	pk, ok := sk.Public()
	require.True(t, ok)
	return NewRootLog(db, sk, pk)
}

func testItems(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte(fmt.Sprintf("record-%d", i))
	}
	return out
}

func TestRootLogPublishAndGet(t *testing.T) {
	log := testRootLog(t)
	data := testItems(10)
	tree := merkletree.New(nil, data[:4]...)

	first, err := log.Publish(tree)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.Seq)
	assert.Equal(t, 4, first.Size)
	assert.Equal(t, tree.MerkleRoot(), first.Root)
	require.NoError(t, log.VerifyRecord(first))

	tree.Extend(data[4:]...)
	second, err := log.Publish(tree)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.Seq)
	assert.Equal(t, 10, second.Size)

	got, err := log.Get(0)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	latest, err := log.Latest()
	require.NoError(t, err)
	assert.Equal(t, second, latest)

	_, err = log.Get(42)
	assert.Error(t, err)
}

func TestRootLogEmpty(t *testing.T) {
	log := testRootLog(t)
	_, err := log.Latest()
	assert.Equal(t, ErrEmptyRootLog, err)
	assert.NoError(t, log.Audit(merkletree.New(nil, testItems(3)...)))
}

func TestRootLogRejectsEmptyTree(t *testing.T) {
	log := testRootLog(t)
	_, err := log.Publish(merkletree.New(nil))
	assert.Error(t, err)
	_, err = log.Publish(nil)
	assert.Error(t, err)
}

func TestRootLogRejectsDivergedTree(t *testing.T) {
	log := testRootLog(t)
	data := testItems(8)
	tree := merkletree.New(nil, data[:5]...)
	_, err := log.Publish(tree)
	require.NoError(t, err)

	// a tree with a different history must be rejected
	forged := merkletree.New(nil, data[3:]...)
	_, err = log.Publish(forged)
	assert.Error(t, err)

	// a tree smaller than the published head must be rejected too
	shrunk := merkletree.New(nil, data[:3]...)
	_, err = log.Publish(shrunk)
	assert.Error(t, err)
}

func TestRootLogAudit(t *testing.T) {
	log := testRootLog(t)
	data := testItems(12)
	tree := merkletree.New(nil, data[:3]...)

	for _, cut := range []int{6, 9, 12} {
		_, err := log.Publish(tree)
		require.NoError(t, err)
		tree.Extend(data[tree.Len():cut]...)
	}
	require.NoError(t, log.Audit(tree))

	// mutating a published leaf breaks the audit
	require.NoError(t, tree.Update(data[1], []byte("tampered")))
	assert.Error(t, log.Audit(tree))
}

func TestRootLogBadSignature(t *testing.T) {
	log := testRootLog(t)
	tree := merkletree.New(nil, testItems(4)...)
	rec, err := log.Publish(tree)
	require.NoError(t, err)

	rec.Root = "deadbeef"
	assert.Equal(t, ErrBadSignature, log.VerifyRecord(rec))
}

func TestRootLogWithoutSigningKey(t *testing.T) {
	db, err := leveldbkv.OpenDB(filepath.Join(t.TempDir(), "rootlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sk, err := sign.GenerateKey(nil)
	require.NoError(t, err)
	pk, ok := sk.Public()
	require.True(t, ok)

	log := NewRootLog(db, nil, pk)
	_, err = log.Publish(merkletree.New(nil, testItems(2)...))
	assert.Error(t, err)
}
