// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package index builds a fixed-bucket hash table on top of a DataFile's
// Link envelopes. This sits above datafile and is outside the spec's
// "chain-state index above the data file" carve-out — it is a small,
// concrete consumer of Link records (which the data file otherwise
// treats as opaque) rather than a chain-state/UTXO index.
package index

import (
	"encoding/binary"
	"fmt"

	"github.com/dchest/siphash"

	"github.com/publicmoney/parity-bitcoin/datafile"
)

// bucketCount is the number of top-level hash buckets. Each bucket is a
// singly linked chain of entries, threaded through the data file itself
// via PageRef "next" pointers stored inside each Link payload.
const bucketCount = 1024

// siphash keys. Fixed, not secret: the index only needs a reasonably
// uniform bucket distribution, not collision resistance against an
// adversary who can choose keys.
const (
	sipK0 uint64 = 0x6c65737320627574
	sipK1 uint64 = 0x7468616e2038206c
)

// entry is the on-disk shape of a bucket chain node, serialized into a
// Link payload: the full key, its keyHash (cached so chain walks don't
// need to re-hash), the PageRef of the value this key maps to, and the
// PageRef of the next entry in the same bucket (InvalidPageRef if this
// is the last one).
type entry struct {
	keyHash uint64
	key     []byte
	value   datafile.PageRef
	next    datafile.PageRef
}

func (e entry) marshal() []byte {
	buf := make([]byte, 8+2+len(e.key)+8+8)
	binary.BigEndian.PutUint64(buf[0:8], e.keyHash)
	binary.BigEndian.PutUint16(buf[8:10], uint16(len(e.key)))
	copy(buf[10:10+len(e.key)], e.key)
	off := 10 + len(e.key)
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(e.value))
	binary.BigEndian.PutUint64(buf[off+8:off+16], uint64(e.next))
	return buf
}

func unmarshalEntry(raw []byte) (entry, error) {
	if len(raw) < 10 {
		return entry{}, fmt.Errorf("index: truncated entry header")
	}
	keyHash := binary.BigEndian.Uint64(raw[0:8])
	keyLen := int(binary.BigEndian.Uint16(raw[8:10]))
	if len(raw) < 10+keyLen+16 {
		return entry{}, fmt.Errorf("index: truncated entry body")
	}
	key := append([]byte(nil), raw[10:10+keyLen]...)
	off := 10 + keyLen
	value := datafile.PageRef(binary.BigEndian.Uint64(raw[off : off+8]))
	next := datafile.PageRef(binary.BigEndian.Uint64(raw[off+8 : off+16]))
	return entry{keyHash: keyHash, key: key, value: value, next: next}, nil
}

// Index is a hash table of key -> PageRef mappings, persisted as Link
// envelopes in a DataFile. The bucket heads themselves live only in
// memory; reopening a data file and rebuilding the in-memory bucket
// table is the caller's responsibility (via DataFile.ScanFromZero),
// matching the data file's own single-pass recovery-scan design.
type Index struct {
	df      *datafile.DataFile
	buckets [bucketCount]datafile.PageRef
}

// New wraps a DataFile with an empty index.
func New(df *datafile.DataFile) *Index {
	idx := &Index{df: df}
	for i := range idx.buckets {
		idx.buckets[i] = datafile.InvalidPageRef
	}
	return idx
}

func bucketFor(key []byte) (uint64, int) {
	h := siphash.Hash(sipK0, sipK1, key)
	return h, int(h % bucketCount)
}

// Put associates key with value, returning the PageRef of the newly
// appended Link entry. A later Put for the same key shadows the earlier
// one (the new entry becomes the bucket head) rather than replacing it
// in place, consistent with the data file being append-only.
func (idx *Index) Put(key []byte, value datafile.PageRef) (datafile.PageRef, error) {
	hash, bucket := bucketFor(key)
	e := entry{keyHash: hash, key: key, value: value, next: idx.buckets[bucket]}
	ref, err := idx.df.AppendLink(e.marshal())
	if err != nil {
		return datafile.InvalidPageRef, err
	}
	idx.buckets[bucket] = ref
	return ref, nil
}

// Get walks the bucket chain for key's hash and returns the most recent
// value stored for an exact key match.
func (idx *Index) Get(key []byte) (datafile.PageRef, bool, error) {
	hash, bucket := bucketFor(key)
	ref := idx.buckets[bucket]
	for ref.IsValid() {
		env, err := idx.df.GetEnvelope(ref)
		if err != nil {
			return datafile.InvalidPageRef, false, err
		}
		e, err := unmarshalEntry(env.Payload.Data)
		if err != nil {
			return datafile.InvalidPageRef, false, err
		}
		if e.keyHash == hash && string(e.key) == string(key) {
			return e.value, true, nil
		}
		ref = e.next
	}
	return datafile.InvalidPageRef, false, nil
}

// Rebuild replays every Link envelope in the backing data file and
// reconstructs the in-memory bucket heads from scratch. Use this after
// reopening a data file whose index state was only ever held in memory.
func (idx *Index) Rebuild() error {
	for i := range idx.buckets {
		idx.buckets[i] = datafile.InvalidPageRef
	}
	entries, err := idx.df.ScanFromZero()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Envelope.Payload.Kind != datafile.KindLink {
			continue
		}
		parsed, err := unmarshalEntry(e.Envelope.Payload.Data)
		if err != nil {
			return err
		}
		bucket := int(parsed.keyHash % bucketCount)
		// The chain already threads through `next`; only the most
		// recently appended entry per bucket needs to be remembered as
		// the head, and ScanFromZero visits records in append order.
		idx.buckets[bucket] = e.Ref
	}
	return nil
}
