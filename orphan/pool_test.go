// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package orphan

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/publicmoney/parity-bitcoin/consensus"
)

func newTestBlock(t *testing.T, prev chainhash.Hash, nonce uint32) *consensus.Block {
	t.Helper()
	msg := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: prev,
			Timestamp: time.Unix(1600000000, 0),
			Bits:      0x1d00ffff,
			Nonce:     nonce,
		},
	}
	return consensus.NewBlock(msg)
}

func TestOrphanCascadeRemovesBFSOrder(t *testing.T) {
	pool := New()

	var genesis chainhash.Hash // all-zero "known parent"
	b1 := newTestBlock(t, genesis, 1)
	b2 := newTestBlock(t, b1.Hash(), 2)
	b3 := newTestBlock(t, b1.Hash(), 3)

	pool.InsertOrphan(b1)
	pool.InsertOrphan(b2)
	pool.InsertOrphan(b3)

	removed := pool.RemoveBlocksForParent(genesis)
	if len(removed) != 3 {
		t.Fatalf("got %d removed blocks, want 3", len(removed))
	}
	if removed[0].Hash() != b1.Hash() {
		t.Fatalf("removed[0] = %v, want b1 (%v)", removed[0].Hash(), b1.Hash())
	}

	siblings := map[chainhash.Hash]bool{b2.Hash(): false, b3.Hash(): false}
	for _, b := range removed[1:] {
		if _, ok := siblings[b.Hash()]; !ok {
			t.Fatalf("unexpected block in removed set: %v", b.Hash())
		}
		siblings[b.Hash()] = true
	}
	for h, seen := range siblings {
		if !seen {
			t.Fatalf("sibling %v was not removed", h)
		}
	}

	if pool.Len() != 0 {
		t.Fatalf("pool.Len() = %d, want 0 after full cascade", pool.Len())
	}
}

func TestInsertUnknownRejectsDuplicate(t *testing.T) {
	pool := New()
	var parent chainhash.Hash
	b := newTestBlock(t, parent, 1)

	if err := pool.InsertUnknown(b); err != nil {
		t.Fatalf("InsertUnknown: %v", err)
	}
	if err := pool.InsertUnknown(b); err != ErrAlreadyUnknown {
		t.Fatalf("InsertUnknown duplicate: err = %v, want ErrAlreadyUnknown", err)
	}
	if !pool.ContainsUnknown(b.Hash()) {
		t.Fatalf("ContainsUnknown(%v) = false, want true", b.Hash())
	}
}

func TestRemoveKnownKeepsUnknown(t *testing.T) {
	pool := New()
	var parent chainhash.Hash
	known := newTestBlock(t, parent, 1)
	unknown := newTestBlock(t, parent, 2)

	pool.InsertOrphan(known)
	if err := pool.InsertUnknown(unknown); err != nil {
		t.Fatalf("InsertUnknown: %v", err)
	}

	removed := pool.RemoveKnown()
	if len(removed) != 1 || removed[0] != known.Hash() {
		t.Fatalf("RemoveKnown() = %v, want [%v]", removed, known.Hash())
	}
	if !pool.ContainsUnknown(unknown.Hash()) {
		t.Fatalf("unknown block was removed by RemoveKnown")
	}
}

func TestUnknownBlocksPreservesInsertionOrder(t *testing.T) {
	pool := New()
	var parent chainhash.Hash

	var hashes []chainhash.Hash
	for i := uint32(1); i <= 5; i++ {
		b := newTestBlock(t, parent, i)
		if err := pool.InsertUnknown(b); err != nil {
			t.Fatalf("InsertUnknown(%d): %v", i, err)
		}
		hashes = append(hashes, b.Hash())
	}

	got := pool.UnknownBlocks()
	if len(got) != len(hashes) {
		t.Fatalf("got %d unknown blocks, want %d", len(got), len(hashes))
	}
	for i := range hashes {
		if got[i] != hashes[i] {
			t.Fatalf("UnknownBlocks()[%d] = %v, want %v", i, got[i], hashes[i])
		}
	}
}

func TestRemoveBlocksUnionOfDirectAndCascaded(t *testing.T) {
	pool := New()
	var genesis chainhash.Hash
	b1 := newTestBlock(t, genesis, 1)
	b2 := newTestBlock(t, b1.Hash(), 2)

	pool.InsertOrphan(b1)
	pool.InsertOrphan(b2)

	removed := pool.RemoveBlocks([]chainhash.Hash{b1.Hash()})
	found := map[chainhash.Hash]bool{}
	for _, h := range removed {
		found[h] = true
	}
	if !found[b1.Hash()] || !found[b2.Hash()] {
		t.Fatalf("RemoveBlocks(%v) = %v, want both b1 and b2", b1.Hash(), removed)
	}
	if pool.Len() != 0 {
		t.Fatalf("pool.Len() = %d, want 0", pool.Len())
	}
}
