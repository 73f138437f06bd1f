// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

// Package datafile implements the paged, append-only envelope log that
// backs block and transaction storage: a length-prefixed record stream
// with random-access reads by PageRef and in-place updates restricted to
// equal-length payloads.
package datafile

const (
	// PageSize is the fixed size (in bytes) of a single page in the
	// backing file, including its per-page header.
	PageSize = 4096

	// pageHeaderSize is reserved at the start of every page and skipped
	// by reads/writes so the logical envelope stream is contiguous.
	pageHeaderSize = 16

	// PagePayloadSize is the number of usable bytes per page once the
	// header is reserved.
	PagePayloadSize = PageSize - pageHeaderSize

	// lengthPrefixSize is the size of an envelope's length header.
	lengthPrefixSize = 3

	// maxEnvelopeLength is the largest length a 3-byte big-endian
	// header can express.
	maxEnvelopeLength = 1<<24 - 1
)

// PageRef is an unsigned position into the data file, encoded as
// pageIndex*PageSize plus the byte offset within that page's payload
// region (the page header is not counted in the offset). The sentinel
// InvalidPageRef marks "no such reference".
type PageRef uint64

// InvalidPageRef is the sentinel meaning "invalid" or "not found".
const InvalidPageRef PageRef = ^PageRef(0)

// IsValid reports whether the ref is not the invalid sentinel.
func (p PageRef) IsValid() bool {
	return p != InvalidPageRef
}
