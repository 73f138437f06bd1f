// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// MySQL-backed storage. All errors here are treated as fatal by callers;
// this package only surfaces them.
package storage

import (
	"bytes"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// SQLProvider is a MySQL-backed BlockHeaderProvider and
// TransactionOutputProvider, reading previously accepted blocks' headers
// and outputs out of a simple two-table schema (`headers`, `outputs`).
type SQLProvider struct {
	sync.RWMutex

	db *sql.DB
}

// NewSQLProvider wraps an already-opened database handle.
func NewSQLProvider(db *sql.DB) *SQLProvider {
	return &SQLProvider{db: db}
}

// BlockHeader implements BlockHeaderProvider.
func (s *SQLProvider) BlockHeader(height uint64) (*wire.BlockHeader, bool) {
	raw, ok := s.BlockHeaderBytes(height)
	if !ok {
		return nil, false
	}
	header := &wire.BlockHeader{}
	if err := header.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, false
	}
	return header, true
}

// BlockHeaderBytes implements BlockHeaderProvider.
func (s *SQLProvider) BlockHeaderBytes(height uint64) ([]byte, bool) {
	s.RLock()
	defer s.RUnlock()

	var raw []byte
	row := s.db.QueryRow(`SELECT header FROM headers WHERE height = ?`, height)
	if err := row.Scan(&raw); err != nil {
		return nil, false
	}
	return raw, true
}

// TransactionOutput implements TransactionOutputProvider.
func (s *SQLProvider) TransactionOutput(outpoint wire.OutPoint, _ int) (*Output, bool) {
	s.RLock()
	defer s.RUnlock()

	var value int64
	var script []byte
	row := s.db.QueryRow(
		`SELECT value, script FROM outputs WHERE tx_hash = ? AND tx_index = ?`,
		outpoint.Hash[:], outpoint.Index,
	)
	if err := row.Scan(&value, &script); err != nil {
		return nil, false
	}
	return &Output{Value: value, Script: script}, true
}

// PutHeader persists a header at height, for use once a block is
// accepted. Part of the write surface this provider needs beyond the
// read-only interfaces it implements.
func (s *SQLProvider) PutHeader(height uint64, header *wire.BlockHeader) error {
	s.Lock()
	defer s.Unlock()

	var buf bytes.Buffer
	if err := header.Serialize(&buf); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`INSERT INTO headers (height, hash, header) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE header = VALUES(header)`,
		height, headerHash(header)[:], buf.Bytes(),
	)
	return err
}

func headerHash(header *wire.BlockHeader) chainhash.Hash {
	return header.BlockHash()
}
