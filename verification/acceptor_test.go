// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/wire"

	"github.com/publicmoney/parity-bitcoin/consensus"
)

func coinbaseTx(scriptSig []byte) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: 0xffffffff},
		SignatureScript:  scriptSig,
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{Value: 0, PkScript: nil})
	return tx
}

func TestBlockCoinbaseScriptBIP34(t *testing.T) {
	params := consensus.MainNetParams()
	heightPrefix := []byte{0x03, 0x3d, 0x0a, 0x07} // minimal push of 461373

	passing := &consensus.Block{Msg: &wire.MsgBlock{
		Header:       wire.BlockHeader{},
		Transactions: []*wire.MsgTx{coinbaseTx(heightPrefix)},
	}}
	check := &BlockCoinbaseScript{Block: passing, Height: 461373, Params: params}
	if err := check.Check(); err != nil {
		t.Fatalf("Check() at height 461373 = %v, want nil", err)
	}

	check = &BlockCoinbaseScript{Block: passing, Height: 461372, Params: params}
	if err := check.Check(); err != ErrCoinbaseScript {
		t.Fatalf("Check() at height 461372 = %v, want ErrCoinbaseScript", err)
	}
}

func TestBlockSerializedSizeBoundary(t *testing.T) {
	params := &consensus.ConsensusParams{
		MaxBlockSize:       1_000_000,
		MaxBlockWeight:     4_000_000,
		WitnessScaleFactor: 4,
	}

	mkBlock := func(padding int) *consensus.Block {
		tx := coinbaseTx([]byte{0x01})
		tx.TxIn[0].SignatureScript = append(tx.TxIn[0].SignatureScript, make([]byte, padding)...)
		return &consensus.Block{Msg: &wire.MsgBlock{
			Header:       wire.BlockHeader{},
			Transactions: []*wire.MsgTx{tx},
		}}
	}

	small := mkBlock(0)
	smallSize := small.SerializeSizeStripped()
	padTo := func(target int) *consensus.Block {
		// Past 0xffff bytes the script's length prefix grows from 1 to 5
		// bytes; take that growth back out of the padding.
		first := mkBlock(target - smallSize)
		return mkBlock(target - smallSize - (first.SerializeSizeStripped() - target))
	}

	atLimit := padTo(1_000_000)
	check := &BlockSerializedSize{Block: atLimit, Params: params}
	if err := check.Check(); err != nil {
		t.Fatalf("Check() at exactly max size = %v, want nil", err)
	}

	overLimit := padTo(1_000_001)
	check = &BlockSerializedSize{Block: overLimit, Params: params}
	err := check.Check()
	sizeErr, ok := err.(*SizeError)
	if !ok {
		t.Fatalf("Check() over max size: err = %v, want *SizeError", err)
	}
	if sizeErr.Actual != 1_000_001 {
		t.Fatalf("SizeError.Actual = %d, want 1000001", sizeErr.Actual)
	}
}

func TestBlockFinalityRejectsNonFinalTransaction(t *testing.T) {
	blockTime := time.Unix(1_600_000_000, 0)

	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{},
		Sequence:         0, // non-max sequence makes lock_time enforced
	})
	tx.AddTxOut(&wire.TxOut{Value: 1})
	tx.LockTime = uint32(blockTime.Unix()) + 1

	block := &consensus.Block{Msg: &wire.MsgBlock{
		Header:       wire.BlockHeader{Timestamp: blockTime},
		Transactions: []*wire.MsgTx{coinbaseTx([]byte{0x01}), tx},
	}}

	check := &BlockFinality{
		Block:   block,
		Height:  100,
		Headers: nil,
		Deploy:  consensus.DeploymentState{CSVActive: false},
	}
	if err := check.Check(); err != ErrNonFinalBlock {
		t.Fatalf("Check() = %v, want ErrNonFinalBlock", err)
	}
}
