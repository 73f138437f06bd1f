// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// WitnessMerkleRoot computes the witness merkle root of a block's
// transactions per BIP141: identical to the ordinary merkle root, but
// over wtxids instead of txids, with the coinbase's wtxid replaced by
// the all-zero hash.
func WitnessMerkleRoot(txs []*wire.MsgTx) chainhash.Hash {
	if len(txs) == 0 {
		return chainhash.Hash{}
	}

	leaves := make([]chainhash.Hash, len(txs))
	leaves[0] = chainhash.Hash{} // coinbase wtxid is defined as zero
	for i := 1; i < len(txs); i++ {
		leaves[i] = txs[i].WitnessHash()
	}
	return merkleRoot(leaves)
}

func merkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	level := leaves
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]chainhash.Hash, len(level)/2)
		for i := range next {
			var buf [chainhash.HashSize * 2]byte
			copy(buf[:chainhash.HashSize], level[2*i][:])
			copy(buf[chainhash.HashSize:], level[2*i+1][:])
			next[i] = chainhash.DoubleHashH(buf[:])
		}
		level = next
	}
	return level[0]
}
