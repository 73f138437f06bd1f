// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/publicmoney/parity-bitcoin/consensus"
	"github.com/publicmoney/parity-bitcoin/storage"
)

// BlockSigops aggregates legacy sigops and BIP141 sigops cost across
// every transaction in the block, resolving spent outputs through a
// duplex provider so intra-block spends (an output created earlier in
// this same block) resolve without the external store having seen the
// block yet.
type BlockSigops struct {
	Block   *consensus.Block
	Params  *consensus.ConsensusParams
	Outputs *storage.DuplexTransactionOutputProvider
}

// Check implements the sigops sub-check.
func (c *BlockSigops) Check() error {
	bip16Active := c.Block.Msg.Header.Timestamp.Compare(c.Params.BIP16Time) >= 0

	var totalSigops uint64
	var totalCost uint64

	for txIndex, tx := range c.Block.Transactions() {
		sigops, cost := c.transactionSigops(tx, txIndex, bip16Active)
		totalSigops += uint64(sigops)
		totalCost += uint64(cost)
	}

	if totalSigops > c.Params.MaxBlockSigops {
		return ErrMaximumSigops
	}
	if totalCost > c.Params.MaxBlockSigopsCost {
		return ErrMaximumSigopsCost
	}
	return nil
}

func (c *BlockSigops) transactionSigops(tx *wire.MsgTx, txIndex int, bip16Active bool) (sigops int, cost int) {
	isCoinbase := txIndex == 0

	for _, out := range tx.TxOut {
		sigops += txscript.GetSigOpCount(out.PkScript)
	}

	if isCoinbase {
		return sigops, sigops * c.Params.WitnessScaleFactor
	}

	witnessSigops := 0
	for inIndex, in := range tx.TxIn {
		prevOut, ok := c.Outputs.TransactionOutput(in.PreviousOutPoint, txIndex)
		if !ok {
			continue
		}

		sigops += txscript.GetPreciseSigOpCount(in.SignatureScript, prevOut.Script, bip16Active)
		witnessSigops += txscript.GetWitnessSigOpCount(in.SignatureScript, prevOut.Script, tx.TxIn[inIndex].Witness)
	}

	cost = sigops*c.Params.WitnessScaleFactor + witnessSigops
	return sigops, cost
}
