// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package chain

import (
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/publicmoney/parity-bitcoin/consensus"
)

// MainNetGenesis returns the Bitcoin mainnet genesis block.
func MainNetGenesis() *consensus.Block {
	return consensus.NewBlock(chaincfg.MainNetParams.GenesisBlock)
}

// TestNet3Genesis returns the Bitcoin testnet3 genesis block.
func TestNet3Genesis() *consensus.Block {
	return consensus.NewBlock(chaincfg.TestNet3Params.GenesisBlock)
}
