// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package p2p names the one collaborator chain.Chain needs from a peer
// sync layer. Wire formats, handshakes, and peer management are out of
// scope (spec §1: "peer-to-peer wire formats" are external collaborators
// with named interfaces only) and live, if anywhere, in a separate
// networking module this package does not provide.
package p2p

import "github.com/publicmoney/parity-bitcoin/consensus"

// BlockSource feeds candidate blocks to a consumer (typically
// chain.Chain.ProcessBlock, called once per value received) without
// this package knowing how those blocks arrived over the wire.
type BlockSource interface {
	// Blocks returns a channel of candidate blocks. The channel is
	// closed when the source is done (e.g. on shutdown).
	Blocks() <-chan *consensus.Block
}
