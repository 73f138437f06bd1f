// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/publicmoney/parity-bitcoin/consensus"
	"github.com/publicmoney/parity-bitcoin/storage"
)

// BlockCoinbaseClaim checks that the coinbase does not claim more than
// the sum of collected transaction fees and the height's block subsidy.
type BlockCoinbaseClaim struct {
	Block   *consensus.Block
	Height  uint64
	Params  *consensus.ConsensusParams
	Outputs *storage.DuplexTransactionOutputProvider
}

// Check implements the coinbase-claim sub-check.
func (c *BlockCoinbaseClaim) Check() error {
	var totalFees uint64

	for txIndex, tx := range c.Block.Transactions() {
		if txIndex == 0 {
			continue // coinbase has no inputs to sum
		}

		var inputSum uint64
		for _, in := range tx.TxIn {
			out, ok := c.Outputs.TransactionOutput(in.PreviousOutPoint, txIndex)
			if !ok {
				continue // missing prevouts contribute 0
			}
			newSum := inputSum + uint64(out.Value)
			if newSum < inputSum {
				return ErrReferencedInputsSumOverflow
			}
			inputSum = newSum
		}

		var outputSum uint64
		for _, out := range tx.TxOut {
			outputSum += uint64(out.Value)
		}

		if outputSum > inputSum {
			return &TransactionError{Index: txIndex, Kind: Overspend}
		}
		fee := inputSum - outputSum

		newFees := totalFees + fee
		if newFees < totalFees {
			return ErrTransactionFeesOverflow
		}
		totalFees = newFees
	}

	subsidy := consensus.BlockSubsidy(c.Height, c.Params)
	reward := totalFees + uint64(subsidy)
	if reward < totalFees {
		return ErrTransactionFeeAndRewardOverflow
	}

	var coinbaseSpend uint64
	for _, out := range c.Block.Coinbase().TxOut {
		coinbaseSpend += uint64(out.Value)
	}
	if coinbaseSpend > reward {
		return &CoinbaseOverspendError{ExpectedMax: reward, Actual: coinbaseSpend}
	}

	return nil
}
