package application

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/vpaliy/merklelib/crypto/sign"
	"github.com/vpaliy/merklelib/kv"
	"github.com/vpaliy/merklelib/merkletree"
	"github.com/vpaliy/merklelib/utils"
)

var (
	// ErrEmptyRootLog indicates a lookup on a root log without any
	// published records.
	ErrEmptyRootLog = errors.New("[application] root log is empty")
	// ErrBadSignature indicates a root record whose signature does not
	// verify under the log's public key.
	ErrBadSignature = errors.New("[application] invalid root record signature")
)

var rootLogPrefix = []byte("rootlog|")

// A RootRecord is a published tree head: the tree's leaf count and
// root hash at publication time, the publication timestamp, and the
// publisher's signature over all of them.
type RootRecord struct {
	Seq       uint64 `json:"seq"`
	Size      int    `json:"size"`
	Root      string `json:"root"`
	Timestamp int64  `json:"timestamp"`
	Signature []byte `json:"signature"`
}

// signingMessage is the canonical byte string covered by the signature.
func (r *RootRecord) signingMessage() []byte {
	msg := make([]byte, 0, 24+len(r.Root))
	msg = append(msg, utils.ULongToBytes(r.Seq)...)
	msg = append(msg, utils.ULongToBytes(uint64(r.Size))...)
	msg = append(msg, utils.ULongToBytes(uint64(r.Timestamp))...)
	msg = append(msg, []byte(r.Root)...)
	return msg
}

// A RootLog persists the history of published tree heads in a
// key-value database. Every published record is signed, and every
// publication is checked to extend the previously published head, so
// the log as a whole witnesses an append-only history.
type RootLog struct {
	db        kv.DB
	signKey   sign.PrivateKey
	verifyKey sign.PublicKey
}

// NewRootLog constructs a root log over the given database. signKey
// may be nil for a verify-only log; Publish will then fail.
func NewRootLog(db kv.DB, signKey sign.PrivateKey,
	verifyKey sign.PublicKey) *RootLog {
	return &RootLog{
		db:        db,
		signKey:   signKey,
		verifyKey: verifyKey,
	}
}

// recordKey encodes the sequence number big-endian so the database
// iterates records in publication order.
func recordKey(seq uint64) []byte {
	key := make([]byte, len(rootLogPrefix)+8)
	copy(key, rootLogPrefix)
	binary.BigEndian.PutUint64(key[len(rootLogPrefix):], seq)
	return key
}

// Publish signs the tree's current head and appends it to the log.
// The tree must extend the previously published head; a tree whose
// history diverged from the log is rejected.
func (l *RootLog) Publish(tree *merkletree.MerkleTree) (*RootRecord, error) {
	if l.signKey == nil {
		return nil, errors.New("[application] root log has no signing key")
	}
	if tree == nil || tree.MerkleRoot() == "" {
		return nil, errors.New("[application] cannot publish an empty tree")
	}

	var seq uint64
	latest, err := l.Latest()
	switch err {
	case nil:
		ok, err := merkletree.VerifyConsistency(tree, latest.Root, latest.Size)
		if err != nil {
			return nil, errors.Wrap(err, "consistency check against published head")
		}
		if !ok {
			return nil, errors.Errorf(
				"tree does not extend the published head (seq %d, size %d)",
				latest.Seq, latest.Size)
		}
		seq = latest.Seq + 1
	case ErrEmptyRootLog:
	default:
		return nil, err
	}

	rec := &RootRecord{
		Seq:       seq,
		Size:      tree.Len(),
		Root:      tree.MerkleRoot(),
		Timestamp: time.Now().Unix(),
	}
	rec.Signature = l.signKey.Sign(rec.signingMessage())

	buf, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if err := l.db.Put(recordKey(rec.Seq), buf); err != nil {
		return nil, errors.Wrap(err, "persisting root record")
	}
	return rec, nil
}

// Get returns the record published with the given sequence number.
func (l *RootLog) Get(seq uint64) (*RootRecord, error) {
	buf, err := l.db.Get(recordKey(seq))
	if err != nil {
		if err == l.db.ErrNotFound() {
			return nil, errors.Errorf("no root record with seq %d", seq)
		}
		return nil, err
	}
	rec := new(RootRecord)
	if err := json.Unmarshal(buf, rec); err != nil {
		return nil, errors.Wrapf(err, "corrupt root record %d", seq)
	}
	if err := l.VerifyRecord(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Latest returns the most recently published record, or ErrEmptyRootLog.
func (l *RootLog) Latest() (*RootRecord, error) {
	iter := l.db.NewIterator(kv.BytesPrefix(rootLogPrefix))
	defer iter.Release()
	if !iter.Last() {
		if err := iter.Error(); err != nil {
			return nil, err
		}
		return nil, ErrEmptyRootLog
	}
	rec := new(RootRecord)
	if err := json.Unmarshal(iter.Value(), rec); err != nil {
		return nil, errors.Wrap(err, "corrupt latest root record")
	}
	if err := l.VerifyRecord(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// VerifyRecord checks the record's signature under the log's public key.
func (l *RootLog) VerifyRecord(rec *RootRecord) error {
	if !l.verifyKey.Verify(rec.signingMessage(), rec.Signature) {
		return ErrBadSignature
	}
	return nil
}

// Audit replays the whole log against a live tree: every published
// record must carry a valid signature, sizes must never shrink, and
// every published head must be a prefix of the given tree.
func (l *RootLog) Audit(tree *merkletree.MerkleTree) error {
	iter := l.db.NewIterator(kv.BytesPrefix(rootLogPrefix))
	defer iter.Release()

	lastSize := 0
	for ok := iter.First(); ok; ok = iter.Next() {
		rec := new(RootRecord)
		if err := json.Unmarshal(iter.Value(), rec); err != nil {
			return errors.Wrap(err, "corrupt root record")
		}
		if err := l.VerifyRecord(rec); err != nil {
			return errors.Wrapf(err, "record %d", rec.Seq)
		}
		if rec.Size < lastSize {
			return errors.Errorf("record %d shrinks the tree (%d -> %d)",
				rec.Seq, lastSize, rec.Size)
		}
		ok, err := merkletree.VerifyConsistency(tree, rec.Root, rec.Size)
		if err != nil {
			return errors.Wrapf(err, "record %d", rec.Seq)
		}
		if !ok {
			return errors.Errorf("record %d is not a prefix of the tree", rec.Seq)
		}
		lastSize = rec.Size
	}
	return iter.Error()
}
