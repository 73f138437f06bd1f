// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package verification

import (
	"errors"
	"fmt"
)

// ErrNonFinalBlock is returned when some transaction in the block is
// not final at the computed cutoff.
var ErrNonFinalBlock = errors.New("verification: block contains a non-final transaction")

// SizeError reports the block's base serialized size exceeding the
// configured maximum.
type SizeError struct {
	Actual uint64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("verification: block size %d exceeds maximum", e.Actual)
}

// ErrWeight is returned when a SegWit block's weight exceeds the
// configured maximum.
var ErrWeight = errors.New("verification: block weight exceeds maximum")

// ErrMaximumSigops is returned when total legacy sigops exceed the
// configured maximum.
var ErrMaximumSigops = errors.New("verification: block sigops exceed maximum")

// ErrMaximumSigopsCost is returned when total BIP141 sigops cost
// exceeds the configured maximum.
var ErrMaximumSigopsCost = errors.New("verification: block sigops cost exceeds maximum")

// ErrReferencedInputsSumOverflow is returned when summing a
// transaction's referenced prevout values overflows uint64.
var ErrReferencedInputsSumOverflow = errors.New("verification: referenced inputs sum overflows")

// TransactionErrorKind enumerates the distinct per-transaction failure
// reasons a TransactionError can carry.
type TransactionErrorKind int

const (
	// Overspend marks a non-coinbase transaction spending more than
	// its referenced inputs are worth.
	Overspend TransactionErrorKind = iota
)

// TransactionError names a single failing transaction by index within
// the block, plus the reason.
type TransactionError struct {
	Index int
	Kind  TransactionErrorKind
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("verification: transaction %d: overspend", e.Index)
}

// ErrTransactionFeesOverflow is returned when accumulating per-
// transaction fees overflows uint64.
var ErrTransactionFeesOverflow = errors.New("verification: transaction fees overflow")

// ErrTransactionFeeAndRewardOverflow is returned when fees + subsidy
// overflows uint64.
var ErrTransactionFeeAndRewardOverflow = errors.New("verification: transaction fee and reward overflow")

// CoinbaseOverspendError reports the coinbase claiming more than
// fees+subsidy allow.
type CoinbaseOverspendError struct {
	ExpectedMax uint64
	Actual      uint64
}

func (e *CoinbaseOverspendError) Error() string {
	return fmt.Sprintf("verification: coinbase overspend: claims %d, max allowed %d", e.Actual, e.ExpectedMax)
}

// ErrCoinbaseScript is returned when the coinbase's signature script
// does not begin with the BIP34 minimal-push height prefix.
var ErrCoinbaseScript = errors.New("verification: coinbase script missing BIP34 height prefix")

// ErrWitnessInvalidNonceSize is returned when a witness-commitment
// output is present but the coinbase's witness nonce is not exactly 32
// bytes.
var ErrWitnessInvalidNonceSize = errors.New("verification: witness commitment nonce must be 32 bytes")

// ErrWitnessMerkleCommitmentMismatch is returned when the witness
// commitment hash does not match the computed value.
var ErrWitnessMerkleCommitmentMismatch = errors.New("verification: witness merkle commitment mismatch")

// ErrUnexpectedWitness is returned when transactions carry witness data
// but the coinbase has no witness-commitment output.
var ErrUnexpectedWitness = errors.New("verification: unexpected witness data without commitment")
