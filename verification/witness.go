// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/publicmoney/parity-bitcoin/consensus"
)

// BlockWitness enforces the BIP141 witness commitment once SegWit is
// active: if the coinbase carries a witness-commitment output, the
// coinbase's witness nonce must hash (with the witness merkle root)
// to the committed value; if no commitment output exists, no
// transaction may carry witness data.
type BlockWitness struct {
	Block  *consensus.Block
	Deploy consensus.DeploymentState
}

// Check implements the witness sub-check.
func (c *BlockWitness) Check() error {
	if !c.Deploy.SegwitActive {
		return nil
	}

	commitmentScript, found := c.findWitnessCommitment()
	if !found {
		if c.Block.HasWitness() {
			return ErrUnexpectedWitness
		}
		return nil
	}

	coinbase := c.Block.Coinbase()
	if coinbase == nil || len(coinbase.TxIn) == 0 || len(coinbase.TxIn[0].Witness) != 1 {
		return ErrWitnessInvalidNonceSize
	}
	nonce := coinbase.TxIn[0].Witness[0]
	if len(nonce) != 32 {
		return ErrWitnessInvalidNonceSize
	}

	root := consensus.WitnessMerkleRoot(c.Block.Transactions())
	expected := consensus.WitnessCommitmentHash(root, nonce)
	committed := consensus.WitnessCommitmentFromScript(commitmentScript)
	if expected != committed {
		return ErrWitnessMerkleCommitmentMismatch
	}
	return nil
}

// findWitnessCommitment locates the last coinbase output matching the
// witness-commitment script pattern, per BIP141.
func (c *BlockWitness) findWitnessCommitment() ([]byte, bool) {
	coinbase := c.Block.Coinbase()
	if coinbase == nil {
		return nil, false
	}
	for i := len(coinbase.TxOut) - 1; i >= 0; i-- {
		script := coinbase.TxOut[i].PkScript
		if consensus.IsWitnessCommitmentScript(script) {
			return script, true
		}
	}
	return nil, false
}
