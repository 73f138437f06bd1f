// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// witnessCommitmentTag is the 6-byte prefix (OP_RETURN OP_PUSH36
// 0xaa21a9ed) that marks a coinbase output as a BIP141 witness
// commitment, followed by the 32-byte commitment hash.
var witnessCommitmentTag = []byte{0x6a, 0x24, 0xaa, 0x21, 0xa9, 0xed}

const witnessCommitmentScriptLen = len(witnessCommitmentTag) + chainhash.HashSize

// IsWitnessCommitmentScript reports whether script matches the
// witness-commitment output pattern: the 6-byte tag followed by at
// least 32 bytes. Per BIP141, the commitment output may carry extra
// bytes after the 32-byte hash, so this only requires a minimum length.
func IsWitnessCommitmentScript(script []byte) bool {
	if len(script) < witnessCommitmentScriptLen {
		return false
	}
	for i, b := range witnessCommitmentTag {
		if script[i] != b {
			return false
		}
	}
	return true
}

// WitnessCommitmentFromScript extracts the 32-byte commitment hash from
// a script that IsWitnessCommitmentScript has already validated, ignoring
// any trailing bytes beyond it.
func WitnessCommitmentFromScript(script []byte) chainhash.Hash {
	var h chainhash.Hash
	copy(h[:], script[len(witnessCommitmentTag):witnessCommitmentScriptLen])
	return h
}

// WitnessCommitmentHash computes the value the commitment output must
// carry: double-SHA-256 of the witness merkle root concatenated with
// the coinbase's witness nonce.
func WitnessCommitmentHash(witnessMerkleRoot chainhash.Hash, nonce []byte) chainhash.Hash {
	buf := make([]byte, chainhash.HashSize+len(nonce))
	copy(buf, witnessMerkleRoot[:])
	copy(buf[chainhash.HashSize:], nonce)
	return chainhash.DoubleHashH(buf)
}
