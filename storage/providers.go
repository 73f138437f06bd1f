// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package storage defines the narrow, read-only collaborator
// interfaces BlockAcceptor borrows from (header lookups and
// transaction-output lookups), plus a concrete MySQL-backed
// implementation of them. The chain-state/UTXO index that would
// normally sit behind these interfaces is out of scope here.
package storage

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// BlockHeaderProvider resolves a previously-accepted block's header,
// by height, for ancestor walks (e.g. median-time-past).
type BlockHeaderProvider interface {
	// BlockHeader returns the header stored at height, if any.
	BlockHeader(height uint64) (*wire.BlockHeader, bool)

	// BlockHeaderBytes returns the same header's raw serialized bytes,
	// if any.
	BlockHeaderBytes(height uint64) ([]byte, bool)
}

// Output is a previous transaction output, the only fields the
// acceptance pipeline needs from it.
type Output struct {
	Value  int64
	Script []byte
}

// TransactionOutputProvider resolves the output referenced by an
// outpoint, as seen by the transaction at spenderTxIndex within its
// containing block (0 for the coinbase).
type TransactionOutputProvider interface {
	TransactionOutput(outpoint wire.OutPoint, spenderTxIndex int) (*Output, bool)
}

// DuplexTransactionOutputProvider first consults in-block outputs
// (transactions earlier in the same candidate block), falling back to
// an external provider for everything else. This lets intra-block
// spends resolve without the external store having seen the block yet.
type DuplexTransactionOutputProvider struct {
	InBlock  TransactionOutputProvider
	External TransactionOutputProvider
}

// TransactionOutput implements TransactionOutputProvider.
func (d *DuplexTransactionOutputProvider) TransactionOutput(outpoint wire.OutPoint, spenderTxIndex int) (*Output, bool) {
	if d.InBlock != nil {
		if out, ok := d.InBlock.TransactionOutput(outpoint, spenderTxIndex); ok {
			return out, true
		}
	}
	if d.External != nil {
		return d.External.TransactionOutput(outpoint, spenderTxIndex)
	}
	return nil, false
}

// InBlockOutputProvider resolves outputs created earlier within the
// same candidate block, keyed by the producing transaction's hash.
type InBlockOutputProvider struct {
	txsByHash map[chainhash.Hash]*wire.MsgTx
	positions map[chainhash.Hash]int
}

// NewInBlockOutputProvider indexes block's transactions by hash.
func NewInBlockOutputProvider(block *wire.MsgBlock) *InBlockOutputProvider {
	idx := make(map[chainhash.Hash]*wire.MsgTx, len(block.Transactions))
	pos := make(map[chainhash.Hash]int, len(block.Transactions))
	for i, tx := range block.Transactions {
		hash := tx.TxHash()
		idx[hash] = tx
		pos[hash] = i
	}
	return &InBlockOutputProvider{txsByHash: idx, positions: pos}
}

// TransactionOutput implements TransactionOutputProvider.
func (p *InBlockOutputProvider) TransactionOutput(outpoint wire.OutPoint, spenderTxIndex int) (*Output, bool) {
	tx, ok := p.txsByHash[outpoint.Hash]
	if !ok || p.positions[outpoint.Hash] >= spenderTxIndex || int(outpoint.Index) >= len(tx.TxOut) {
		return nil, false
	}
	out := tx.TxOut[outpoint.Index]
	return &Output{Value: out.Value, Script: out.PkScript}, true
}
