// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package verification implements BlockAcceptor: the stateless,
// six-check consensus predicate that decides whether a candidate block
// may extend the chain at a given height. Checks run in a fixed order
// and the first failure short-circuits the rest.
package verification

import (
	"github.com/publicmoney/parity-bitcoin/consensus"
	"github.com/publicmoney/parity-bitcoin/storage"
)

// checker is implemented by each of the six sub-checks.
type checker interface {
	Check() error
}

// BlockAcceptor is an ephemeral, per-candidate value: construct it with
// New and call Check once. It must not outlive the block, headers, or
// output providers it was built from.
type BlockAcceptor struct {
	finality       *BlockFinality
	serializedSize *BlockSerializedSize
	sigops         *BlockSigops
	coinbaseClaim  *BlockCoinbaseClaim
	coinbaseScript *BlockCoinbaseScript
	witness        *BlockWitness
}

// New builds a BlockAcceptor for block at height, against params and
// deploy, using headers for ancestor lookups and outputs for prevout
// resolution. outputs should already be wired with this block's own
// outputs as the in-block side of the duplex (see
// storage.NewInBlockOutputProvider).
func New(
	block *consensus.Block,
	height uint64,
	params *consensus.ConsensusParams,
	deploy consensus.DeploymentState,
	headers storage.BlockHeaderProvider,
	outputs *storage.DuplexTransactionOutputProvider,
) *BlockAcceptor {
	return &BlockAcceptor{
		finality: &BlockFinality{
			Block: block, Height: height, Headers: headers, Deploy: deploy,
		},
		serializedSize: &BlockSerializedSize{
			Block: block, Params: params, Deploy: deploy,
		},
		sigops: &BlockSigops{
			Block: block, Params: params, Outputs: outputs,
		},
		coinbaseClaim: &BlockCoinbaseClaim{
			Block: block, Height: height, Params: params, Outputs: outputs,
		},
		coinbaseScript: &BlockCoinbaseScript{
			Block: block, Height: height, Params: params,
		},
		witness: &BlockWitness{
			Block: block, Deploy: deploy,
		},
	}
}

// Check runs the six sub-checks in the mandated order — finality, size,
// sigops, coinbase claim, coinbase script, witness — returning the
// first failure.
func (a *BlockAcceptor) Check() error {
	order := [...]checker{
		a.finality,
		a.serializedSize,
		a.sigops,
		a.coinbaseClaim,
		a.coinbaseScript,
		a.witness,
	}
	for _, c := range order {
		if err := c.Check(); err != nil {
			return err
		}
	}
	return nil
}
