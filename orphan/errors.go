// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package orphan

import "errors"

// ErrAlreadyUnknown is returned by InsertUnknown when the block's hash
// is already present in the unknown set — a precondition violation
// rather than a recoverable condition.
var ErrAlreadyUnknown = errors.New("orphan: block already tracked as unknown")
