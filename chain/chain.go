// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package chain wires OrphanPool and BlockAcceptor around DataFile: the
// thin orchestration spec.md's "chain-state index above the data file"
// deliberately leaves out. Chain tracks only a single tip (hash and
// height), not a best-chain/UTXO index; it exists to give ProcessBlock a
// caller-facing home.
package chain

import (
	"bytes"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/sirupsen/logrus"

	"github.com/publicmoney/parity-bitcoin/consensus"
	"github.com/publicmoney/parity-bitcoin/datafile"
	"github.com/publicmoney/parity-bitcoin/orphan"
	"github.com/publicmoney/parity-bitcoin/storage"
	"github.com/publicmoney/parity-bitcoin/verification"
)

// Storage is what Chain needs from a persistent external store: header
// lookups for the acceptance pipeline (storage.BlockHeaderProvider) plus
// the write side to record a newly accepted header.
type Storage interface {
	storage.BlockHeaderProvider
	PutHeader(height uint64, header *wire.BlockHeader) error
}

// Chain is the glue: OrphanPool buffers blocks whose parent hasn't
// arrived, BlockAcceptor validates candidates against the current tip,
// and accepted blocks' raw bytes are appended to a DataFile.
type Chain struct {
	mu sync.RWMutex

	storage Storage
	outputs storage.TransactionOutputProvider
	df      *datafile.DataFile
	orphans *orphan.Pool

	params *consensus.ConsensusParams
	deploy consensus.DeploymentState

	genesis  *consensus.Block
	headHash chainhash.Hash
	height   uint64
}

// New builds a Chain rooted at genesis, persisting accepted blocks
// through df and external prevouts/headers through st/outputs.
func New(
	genesis *consensus.Block,
	st Storage,
	outputs storage.TransactionOutputProvider,
	df *datafile.DataFile,
	params *consensus.ConsensusParams,
	deploy consensus.DeploymentState,
) *Chain {
	return &Chain{
		storage:  st,
		outputs:  outputs,
		df:       df,
		orphans:  orphan.New(),
		params:   params,
		deploy:   deploy,
		genesis:  genesis,
		headHash: genesis.Hash(),
		height:   0,
	}
}

// Height returns the current tip height.
func (c *Chain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}

// HeadHash returns the current tip's hash.
func (c *Chain) HeadHash() chainhash.Hash {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.headHash
}

// ProcessBlock validates block against the current tip and, on success,
// persists it and drains any orphans it unblocks. A block whose parent
// isn't the current tip is buffered in the orphan pool (unless
// flags.DryRun) and ErrOrphanBlock is returned; this is not itself a
// validation failure.
func (c *Chain) ProcessBlock(block *consensus.Block, flags Flags) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	hash := block.Hash()
	logrus.Debugf("processing block %s at tip height %d", hash, c.height)

	if hash == c.headHash {
		return ErrDuplicateBlock
	}

	if block.PrevHash() != c.headHash {
		if !flags.DryRun {
			c.orphans.InsertOrphan(block)
		}
		logrus.Infof("buffered orphan block %s (parent %s)", hash, block.PrevHash())
		return ErrOrphanBlock
	}

	if err := c.accept(block, c.height+1); err != nil {
		return err
	}

	if flags.DryRun {
		return nil
	}

	if err := c.persist(block, c.height+1); err != nil {
		return err
	}
	c.advance(block)

	if !flags.FastAdd {
		c.drainOrphans(hash)
	}

	return nil
}

// accept runs the BlockAcceptor pipeline for block at height without
// mutating any state.
func (c *Chain) accept(block *consensus.Block, height uint64) error {
	duplex := &storage.DuplexTransactionOutputProvider{
		InBlock:  storage.NewInBlockOutputProvider(block.Msg),
		External: c.outputs,
	}
	acceptor := verification.New(block, height, c.params, c.deploy, c.storage, duplex)
	return acceptor.Check()
}

// persist appends block's raw bytes to the data file, keyed by block
// hash, and records its header in storage at height.
func (c *Chain) persist(block *consensus.Block, height uint64) error {
	buf, err := serializeBlock(block)
	if err != nil {
		return err
	}

	hash := block.Hash()
	if _, err := c.df.AppendIndexed(hash[:], buf); err != nil {
		return err
	}
	return c.storage.PutHeader(height, &block.Msg.Header)
}

// advance moves the tip forward to block, which must already have been
// accepted and persisted at c.height+1.
func (c *Chain) advance(block *consensus.Block) {
	c.height++
	c.headHash = block.Hash()
	logrus.Infof("accepted block %s at height %d", c.headHash, c.height)
}

// drainOrphans repeats acceptance for every orphan chain rooted at
// fromHash, breadth-first, stopping a given branch at its first
// validation failure. Mirrors the teacher pack's processOrphans loop.
func (c *Chain) drainOrphans(fromHash chainhash.Hash) {
	queue := []chainhash.Hash{fromHash}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		for _, child := range c.orphans.RemoveBlocksForParent(parent) {
			if child.PrevHash() != c.headHash {
				// No longer the tip by the time this ran; drop it.
				continue
			}
			if err := c.accept(child, c.height+1); err != nil {
				logrus.Infof("dropping orphan %s: %v", child.Hash(), err)
				continue
			}
			if err := c.persist(child, c.height+1); err != nil {
				logrus.Errorf("failed to persist orphan %s: %v", child.Hash(), err)
				continue
			}
			c.advance(child)
			queue = append(queue, child.Hash())
		}
	}
}

// serializeBlock encodes block the way it will be read back: full wire
// serialization, witness data included.
func serializeBlock(block *consensus.Block) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(block.SerializeSize())
	if err := block.Msg.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
