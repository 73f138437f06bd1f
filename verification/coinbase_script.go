// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"

	"github.com/publicmoney/parity-bitcoin/consensus"
)

// BlockCoinbaseScript enforces BIP34 once active: the coinbase's first
// input's signature script must begin with the minimal-push encoding of
// the block height.
type BlockCoinbaseScript struct {
	Block  *consensus.Block
	Height uint64
	Params *consensus.ConsensusParams
}

// Check implements the coinbase-script sub-check.
func (c *BlockCoinbaseScript) Check() error {
	if c.Height < c.Params.BIP34Height {
		return nil
	}

	prefix, err := txscript.NewScriptBuilder().AddInt64(int64(c.Height)).Script()
	if err != nil {
		return ErrCoinbaseScript
	}

	coinbase := c.Block.Coinbase()
	if coinbase == nil || len(coinbase.TxIn) == 0 {
		return ErrCoinbaseScript
	}

	script := coinbase.TxIn[0].SignatureScript
	if !bytes.HasPrefix(script, prefix) {
		return ErrCoinbaseScript
	}
	return nil
}
