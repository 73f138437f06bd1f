// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package storage

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// BlockRef identifies a block by whichever of hash or height the caller
// has on hand; at least one field is expected to be set.
type BlockRef struct {
	Hash   *chainhash.Hash
	Height *uint64
}
