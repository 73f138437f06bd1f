// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcutil"

	"github.com/publicmoney/parity-bitcoin/consensus"
	"github.com/publicmoney/parity-bitcoin/storage"
)

// BlockFinality checks that every transaction in the candidate is final
// at the computed cutoff: median-time-past of the last MedianTimeWindow
// headers when CSV is active, else the block's own timestamp.
type BlockFinality struct {
	Block   *consensus.Block
	Height  uint64
	Headers storage.BlockHeaderProvider
	Deploy  consensus.DeploymentState
}

// Check implements the finality sub-check.
func (c *BlockFinality) Check() error {
	cutoff := c.Block.Msg.Header.Timestamp
	if c.Deploy.CSVActive {
		cutoff = c.medianTimePast()
	}

	for _, tx := range c.Block.Transactions() {
		if !blockchain.IsFinalizedTransaction(btcutil.NewTx(tx), int32(c.Height), cutoff) {
			return ErrNonFinalBlock
		}
	}
	return nil
}

func (c *BlockFinality) medianTimePast() time.Time {
	var times []time.Time
	for i := uint64(0); i < consensus.MedianTimeWindow && i < c.Height; i++ {
		header, ok := c.Headers.BlockHeader(c.Height - 1 - i)
		if !ok {
			break
		}
		times = append(times, header.Timestamp)
	}
	if len(times) == 0 {
		return c.Block.Msg.Header.Timestamp
	}
	return consensus.MedianTimePast(times)
}
