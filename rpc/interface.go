// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package rpc names the one collaborator a JSON-RPC server would need
// from the chain. Request parsing, response formatting, and the RPC
// transport itself are out of scope (spec §1: "JSON-RPC" is a named
// external collaborator only) — this interface is the seam such a
// server would be built against, not a server.
package rpc

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/publicmoney/parity-bitcoin/consensus"
)

// ChainQuerier is what a getblock/getblockcount-style RPC handler reads
// from the chain, mirroring the core/client split in
// BlockChainClientCoreApi: best tip, hash-indexed lookup, and raw block
// retrieval, without any of the wire/verbose-response shaping around it.
type ChainQuerier interface {
	// BestBlockHash returns the current tip's hash.
	BestBlockHash() chainhash.Hash

	// Height returns the current tip's height.
	Height() uint64

	// BlockByHash returns the block stored under hash, if any.
	BlockByHash(hash chainhash.Hash) (*consensus.Block, bool)
}
