// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package chain

import (
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/publicmoney/parity-bitcoin/consensus"
	"github.com/publicmoney/parity-bitcoin/datafile"
	"github.com/publicmoney/parity-bitcoin/storage"
)

// fakeStorage is an in-memory Storage for tests: no database, no disk.
type fakeStorage struct {
	mu      sync.Mutex
	headers map[uint64]*wire.BlockHeader
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{headers: make(map[uint64]*wire.BlockHeader)}
}

func (s *fakeStorage) BlockHeader(height uint64) (*wire.BlockHeader, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.headers[height]
	return h, ok
}

func (s *fakeStorage) BlockHeaderBytes(height uint64) ([]byte, bool) {
	return nil, false
}

func (s *fakeStorage) PutHeader(height uint64, header *wire.BlockHeader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers[height] = header
	return nil
}

// noOutputs resolves no external prevouts; fine for coinbase-only test
// blocks, which never reference an input.
type noOutputs struct{}

func (noOutputs) TransactionOutput(wire.OutPoint, int) (*storage.Output, bool) { return nil, false }

func testParams() *consensus.ConsensusParams {
	return &consensus.ConsensusParams{
		MaxBlockSize:           1_000_000,
		MaxBlockWeight:         4_000_000,
		WitnessScaleFactor:     4,
		MaxBlockSigops:         20_000,
		MaxBlockSigopsCost:     80_000,
		BIP16Time:              time.Unix(0, 0),
		BIP34Height:            1 << 32, // far beyond test heights: BIP34 inert
		SubsidyHalvingInterval: 210_000,
		InitialSubsidy:         50_0000_0000,
	}
}

func coinbaseBlock(t *testing.T, prev chainhash.Hash, nonce uint32) *consensus.Block {
	t.Helper()
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: 0xffffffff},
		SignatureScript:  []byte{0x01},
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{Value: 0, PkScript: nil})

	msg := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			PrevBlock: prev,
			Timestamp: time.Unix(1_600_000_000, 0),
			Bits:      0x1d00ffff,
			Nonce:     nonce,
		},
		Transactions: []*wire.MsgTx{tx},
	}
	return consensus.NewBlock(msg)
}

func newTestChain(t *testing.T) (*Chain, *consensus.Block) {
	t.Helper()
	genesis := coinbaseBlock(t, chainhash.Hash{}, 0)

	backing, err := datafile.OpenFilePagedFile(t.TempDir() + "/chain.dat")
	if err != nil {
		t.Fatalf("OpenFilePagedFile: %v", err)
	}
	df, err := datafile.Open(backing)
	if err != nil {
		t.Fatalf("datafile.Open: %v", err)
	}

	c := New(genesis, newFakeStorage(), noOutputs{}, df, testParams(), consensus.DeploymentState{})
	return c, genesis
}

func TestProcessBlockExtendsTip(t *testing.T) {
	c, genesis := newTestChain(t)

	b1 := coinbaseBlock(t, genesis.Hash(), 1)
	if err := c.ProcessBlock(b1, Flags{}); err != nil {
		t.Fatalf("ProcessBlock(b1) = %v, want nil", err)
	}
	if c.Height() != 1 {
		t.Fatalf("Height() = %d, want 1", c.Height())
	}
	if c.HeadHash() != b1.Hash() {
		t.Fatalf("HeadHash() = %v, want %v", c.HeadHash(), b1.Hash())
	}
}

func TestProcessBlockRejectsDuplicateTip(t *testing.T) {
	c, genesis := newTestChain(t)

	if err := c.ProcessBlock(genesis, Flags{}); err != ErrDuplicateBlock {
		t.Fatalf("ProcessBlock(genesis) = %v, want ErrDuplicateBlock", err)
	}
}

func TestProcessBlockBuffersOrphan(t *testing.T) {
	c, genesis := newTestChain(t)

	b1 := coinbaseBlock(t, genesis.Hash(), 1)
	b2 := coinbaseBlock(t, b1.Hash(), 2) // arrives before its parent

	if err := c.ProcessBlock(b2, Flags{}); err != ErrOrphanBlock {
		t.Fatalf("ProcessBlock(b2) = %v, want ErrOrphanBlock", err)
	}
	if c.Height() != 0 {
		t.Fatalf("Height() = %d, want 0 (orphan must not advance tip)", c.Height())
	}
}

func TestProcessBlockDrainsOrphanCascade(t *testing.T) {
	c, genesis := newTestChain(t)

	b1 := coinbaseBlock(t, genesis.Hash(), 1)
	b2 := coinbaseBlock(t, b1.Hash(), 2)
	b3 := coinbaseBlock(t, b2.Hash(), 3)

	if err := c.ProcessBlock(b3, Flags{}); err != ErrOrphanBlock {
		t.Fatalf("ProcessBlock(b3) = %v, want ErrOrphanBlock", err)
	}
	if err := c.ProcessBlock(b2, Flags{}); err != ErrOrphanBlock {
		t.Fatalf("ProcessBlock(b2) = %v, want ErrOrphanBlock", err)
	}

	if err := c.ProcessBlock(b1, Flags{}); err != nil {
		t.Fatalf("ProcessBlock(b1) = %v, want nil", err)
	}

	if c.Height() != 3 {
		t.Fatalf("Height() = %d, want 3 after cascade through b2, b3", c.Height())
	}
	if c.HeadHash() != b3.Hash() {
		t.Fatalf("HeadHash() = %v, want b3 (%v)", c.HeadHash(), b3.Hash())
	}
}

func TestProcessBlockDryRunDoesNotPersistOrBuffer(t *testing.T) {
	c, genesis := newTestChain(t)
	b1 := coinbaseBlock(t, genesis.Hash(), 1)

	if err := c.ProcessBlock(b1, Flags{DryRun: true}); err != nil {
		t.Fatalf("ProcessBlock(b1, DryRun) = %v, want nil", err)
	}
	if c.Height() != 0 {
		t.Fatalf("Height() = %d, want 0 after dry run", c.Height())
	}

	b2 := coinbaseBlock(t, b1.Hash(), 2)
	if err := c.ProcessBlock(b2, Flags{DryRun: true}); err != ErrOrphanBlock {
		t.Fatalf("ProcessBlock(b2, DryRun) = %v, want ErrOrphanBlock", err)
	}
	if c.orphans.Len() != 0 {
		t.Fatalf("orphans.Len() = %d, want 0: DryRun must not buffer", c.orphans.Len())
	}
}
