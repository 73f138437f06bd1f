// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import "github.com/btcsuite/btcutil"

// BlockSubsidy computes the block reward at height under p's halving
// schedule, independent of any fees collected by transactions in the
// block.
func BlockSubsidy(height uint64, p *ConsensusParams) btcutil.Amount {
	halvings := height / p.SubsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return btcutil.Amount(p.InitialSubsidy >> halvings)
}
