// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import "time"

// ConsensusParams bundles the numeric constants that parameterize block
// acceptance. A single instance is shared read-only across checks for a
// given network.
type ConsensusParams struct {
	// MaxBlockSize is the maximum base (non-witness) serialized block
	// size, in bytes.
	MaxBlockSize uint64

	// MaxBlockWeight is the maximum SegWit block weight.
	MaxBlockWeight uint64

	// WitnessScaleFactor weights non-witness bytes against witness
	// bytes when computing block weight.
	WitnessScaleFactor int

	// MaxBlockSigops and MaxBlockSigopsCost bound, respectively, the
	// legacy sigops count and the BIP141 sigops cost of a block.
	MaxBlockSigops     uint64
	MaxBlockSigopsCost uint64

	// BIP16Time is the block timestamp at and after which BIP16
	// (pay-to-script-hash) sigops counting applies.
	BIP16Time time.Time

	// BIP34Height is the block height at and above which the coinbase
	// script must begin with the block height as a minimal push.
	BIP34Height uint64

	// SubsidyHalvingInterval is the number of blocks between subsidy
	// halvings.
	SubsidyHalvingInterval uint64

	// InitialSubsidy is the block reward before any halving, in
	// satoshis.
	InitialSubsidy uint64
}

// MainNetParams returns Bitcoin mainnet's consensus parameters.
func MainNetParams() *ConsensusParams {
	return &ConsensusParams{
		MaxBlockSize:           1_000_000,
		MaxBlockWeight:         4_000_000,
		WitnessScaleFactor:     4,
		MaxBlockSigops:         20_000,
		MaxBlockSigopsCost:     80_000,
		BIP16Time:              time.Unix(1333238400, 0), // 2012-04-01
		BIP34Height:            227931,
		SubsidyHalvingInterval: 210_000,
		InitialSubsidy:         50_0000_0000,
	}
}

// TestNetParams returns Bitcoin testnet3's consensus parameters, which
// differ from mainnet only in BIP34Height.
func TestNetParams() *ConsensusParams {
	p := MainNetParams()
	p.BIP34Height = 21111
	return p
}
