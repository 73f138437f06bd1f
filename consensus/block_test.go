// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"testing"

	"github.com/btcsuite/btcd/wire"
)

func plainTx() *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{SignatureScript: []byte{0x01}})
	tx.AddTxOut(&wire.TxOut{Value: 1, PkScript: []byte{0x02}})
	return tx
}

func TestBlockHasWitness(t *testing.T) {
	noWitness := NewBlock(&wire.MsgBlock{Transactions: []*wire.MsgTx{plainTx()}})
	if noWitness.HasWitness() {
		t.Errorf("HasWitness() = true for a block with no witness data")
	}

	withWitness := plainTx()
	withWitness.TxIn[0].Witness = wire.TxWitness{[]byte{0x01}}
	witnessBlock := NewBlock(&wire.MsgBlock{Transactions: []*wire.MsgTx{withWitness}})
	if !witnessBlock.HasWitness() {
		t.Errorf("HasWitness() = false for a block with a witness stack")
	}
}

func TestBlockWeightMatchesStrippedWhenNoWitness(t *testing.T) {
	block := NewBlock(&wire.MsgBlock{Transactions: []*wire.MsgTx{plainTx()}})

	stripped := block.SerializeSizeStripped()
	full := block.SerializeSize()
	if stripped != full {
		t.Fatalf("stripped size (%d) != full size (%d) for a witness-free block", stripped, full)
	}

	weight := block.Weight(4)
	want := int64(stripped) * 4
	if weight != want {
		t.Errorf("Weight(4) = %d, want %d", weight, want)
	}
}

func TestBlockCoinbaseEmptyBlock(t *testing.T) {
	empty := NewBlock(&wire.MsgBlock{})
	if empty.Coinbase() != nil {
		t.Errorf("Coinbase() on an empty block should be nil")
	}
}
