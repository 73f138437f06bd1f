// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package consensus holds the thin wrappers around btcd's wire types
// that the rest of this module builds on: a Block shape (transactions
// stay plain wire.MsgTx) with the derived quantities (hash, serialized size, weight) the
// acceptance pipeline needs, plus the consensus-parameter and
// soft-fork-deployment bundles those checks are parameterized by.
package consensus

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Block wraps wire.MsgBlock with accessors for the derived quantities
// the acceptance pipeline needs. Nothing is cached: each accessor
// recomputes its value from Msg on every call.
type Block struct {
	Msg *wire.MsgBlock
}

// NewBlock wraps msg.
func NewBlock(msg *wire.MsgBlock) *Block {
	return &Block{Msg: msg}
}

// Hash returns the block's double-SHA-256 header hash.
func (b *Block) Hash() chainhash.Hash {
	return b.Msg.BlockHash()
}

// PrevHash returns the hash of the block this one extends.
func (b *Block) PrevHash() chainhash.Hash {
	return b.Msg.Header.PrevBlock
}

// Transactions returns the block's transaction list.
func (b *Block) Transactions() []*wire.MsgTx {
	return b.Msg.Transactions
}

// Coinbase returns the block's first transaction, which by consensus
// rule is always the coinbase.
func (b *Block) Coinbase() *wire.MsgTx {
	if len(b.Msg.Transactions) == 0 {
		return nil
	}
	return b.Msg.Transactions[0]
}

// SerializeSize returns the full wire size, including any witness data.
func (b *Block) SerializeSize() int {
	return b.Msg.SerializeSize()
}

// SerializeSizeStripped returns the base (non-witness) wire size: every
// transaction serialized as if it carried no witness data.
func (b *Block) SerializeSizeStripped() int {
	size := wire.MaxBlockHeaderPayload
	size += varIntSerializeSize(uint64(len(b.Msg.Transactions)))
	for _, tx := range b.Msg.Transactions {
		size += tx.SerializeSizeStripped()
	}
	return size
}

// Weight computes SegWit block weight: base_size*(scaleFactor-1) + total_size.
func (b *Block) Weight(scaleFactor int) int64 {
	base := b.SerializeSizeStripped()
	total := b.SerializeSize()
	return int64(base)*int64(scaleFactor-1) + int64(total)
}

// HasWitness reports whether any transaction in the block carries a
// witness stack.
func (b *Block) HasWitness() bool {
	for _, tx := range b.Msg.Transactions {
		if hasWitness(tx) {
			return true
		}
	}
	return false
}

func hasWitness(tx *wire.MsgTx) bool {
	for _, in := range tx.TxIn {
		if len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

// varIntSerializeSize mirrors wire's own variable-length integer size
// table; kept local so this package doesn't reach into wire's
// unexported helpers.
func varIntSerializeSize(v uint64) int {
	switch {
	case v < 0xfd:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}
