// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"github.com/publicmoney/parity-bitcoin/consensus"
)

// BlockSerializedSize checks the base (non-witness) block size against
// ConsensusParams.MaxBlockSize, and, once SegWit is active, the block's
// weight against ConsensusParams.MaxBlockWeight.
type BlockSerializedSize struct {
	Block  *consensus.Block
	Params *consensus.ConsensusParams
	Deploy consensus.DeploymentState
}

// Check implements the serialized-size sub-check.
func (c *BlockSerializedSize) Check() error {
	base := c.Block.SerializeSizeStripped()
	if uint64(base) > c.Params.MaxBlockSize {
		return &SizeError{Actual: uint64(base)}
	}

	if c.Deploy.SegwitActive {
		weight := c.Block.Weight(c.Params.WitnessScaleFactor)
		if uint64(weight) > c.Params.MaxBlockWeight {
			return ErrWeight
		}
	}

	return nil
}
