// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package chain

import "errors"

var (
	// ErrDuplicateBlock is returned when the block is already the
	// current tip.
	ErrDuplicateBlock = errors.New("chain: block already accepted")

	// ErrOrphanBlock is returned when the block's parent is not the
	// current tip. The block has been buffered in the orphan pool (or
	// would have been, absent Flags.DryRun) rather than rejected.
	ErrOrphanBlock = errors.New("chain: parent not found, buffered as orphan")
)
