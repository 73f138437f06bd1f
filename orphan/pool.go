// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package orphan buffers blocks whose parent hasn't been seen yet,
// keyed by parent hash, and separately tracks which of those blocks we
// never actually requested ("unknown" orphans) in arrival order.
package orphan

import (
	"container/list"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/publicmoney/parity-bitcoin/consensus"
)

// unknownEntry is the value stored in the unknownIndex list: the block
// hash and the wall-clock time it arrived.
type unknownEntry struct {
	hash      chainhash.Hash
	arrivedAt time.Time
}

// Pool is the two-tier orphan buffer described in the package doc.
// External callers must serialize writes themselves; reads may be
// concurrent with other reads.
type Pool struct {
	// parentIndex maps a parent hash to its known children, keyed by
	// child hash.
	parentIndex map[chainhash.Hash]map[chainhash.Hash]*consensus.Block

	// unknownIndex preserves insertion order via an intrusive list,
	// with a side map for O(1) membership/removal by hash.
	unknownOrder *list.List
	unknownByKey map[chainhash.Hash]*list.Element
}

// New returns an empty Pool.
func New() *Pool {
	return &Pool{
		parentIndex:  make(map[chainhash.Hash]map[chainhash.Hash]*consensus.Block),
		unknownOrder: list.New(),
		unknownByKey: make(map[chainhash.Hash]*list.Element),
	}
}

// InsertOrphan adds block under its parent's bucket. Inserting the same
// hash again replaces the earlier entry.
func (p *Pool) InsertOrphan(block *consensus.Block) {
	parent := block.PrevHash()
	hash := block.Hash()
	bucket, ok := p.parentIndex[parent]
	if !ok {
		bucket = make(map[chainhash.Hash]*consensus.Block)
		p.parentIndex[parent] = bucket
	}
	bucket[hash] = block
}

// InsertUnknown additionally records block as an orphan we never asked
// for. It is a precondition violation to insert the same hash into the
// unknown set twice.
func (p *Pool) InsertUnknown(block *consensus.Block) error {
	hash := block.Hash()
	if _, ok := p.unknownByKey[hash]; ok {
		return ErrAlreadyUnknown
	}
	p.InsertOrphan(block)
	elem := p.unknownOrder.PushBack(unknownEntry{hash: hash, arrivedAt: wallClockNow()})
	p.unknownByKey[hash] = elem
	return nil
}

// wallClockNow is split out so tests (and any future deterministic
// replay) have a single seam to override.
var wallClockNow = time.Now

// removeFromUnknown drops hash from unknownIndex, if present.
func (p *Pool) removeFromUnknown(hash chainhash.Hash) {
	if elem, ok := p.unknownByKey[hash]; ok {
		p.unknownOrder.Remove(elem)
		delete(p.unknownByKey, hash)
	}
}

// pruneEmptyBucket removes parentIndex[parent] if it has no children
// left.
func (p *Pool) pruneEmptyBucket(parent chainhash.Hash) {
	if bucket, ok := p.parentIndex[parent]; ok && len(bucket) == 0 {
		delete(p.parentIndex, parent)
	}
}

// RemoveKnown removes every orphan whose hash is not in unknownIndex
// and returns their hashes.
func (p *Pool) RemoveKnown() []chainhash.Hash {
	var removed []chainhash.Hash
	for parent, bucket := range p.parentIndex {
		for hash := range bucket {
			if _, isUnknown := p.unknownByKey[hash]; isUnknown {
				continue
			}
			delete(bucket, hash)
			removed = append(removed, hash)
		}
		p.pruneEmptyBucket(parent)
	}
	return removed
}

// RemoveBlocksForParent performs a breadth-first walk starting at
// parentHash, removing every descendant orphan bucket and returning the
// blocks in BFS order (children before grandchildren).
func (p *Pool) RemoveBlocksForParent(parentHash chainhash.Hash) []*consensus.Block {
	var result []*consensus.Block
	queue := []chainhash.Hash{parentHash}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		bucket, ok := p.parentIndex[current]
		if !ok {
			continue
		}
		delete(p.parentIndex, current)

		for childHash, block := range bucket {
			p.removeFromUnknown(childHash)
			result = append(result, block)
			queue = append(queue, childHash)
		}
	}

	return result
}

// RemoveBlocks removes every hash in hashes from whichever parent
// bucket it appears in, then cascades via RemoveBlocksForParent for
// each input hash, returning the union of directly- and
// cascade-removed hashes.
func (p *Pool) RemoveBlocks(hashes []chainhash.Hash) []chainhash.Hash {
	var removed []chainhash.Hash

	for parent, bucket := range p.parentIndex {
		for _, hash := range hashes {
			if _, ok := bucket[hash]; ok {
				delete(bucket, hash)
				p.removeFromUnknown(hash)
				removed = append(removed, hash)
			}
		}
		p.pruneEmptyBucket(parent)
	}

	for _, hash := range hashes {
		cascaded := p.RemoveBlocksForParent(hash)
		for _, block := range cascaded {
			removed = append(removed, block.Hash())
		}
	}

	return removed
}

// ContainsUnknown reports whether hash is tracked as an unknown orphan.
func (p *Pool) ContainsUnknown(hash chainhash.Hash) bool {
	_, ok := p.unknownByKey[hash]
	return ok
}

// UnknownBlocks returns the unknown orphans' hashes in arrival order.
func (p *Pool) UnknownBlocks() []chainhash.Hash {
	hashes := make([]chainhash.Hash, 0, p.unknownOrder.Len())
	for e := p.unknownOrder.Front(); e != nil; e = e.Next() {
		hashes = append(hashes, e.Value.(unknownEntry).hash)
	}
	return hashes
}

// Len returns the number of parent buckets, not the total buffered
// block count. This is a deliberately coarse metric matching the
// original design.
func (p *Pool) Len() int {
	return len(p.parentIndex)
}
