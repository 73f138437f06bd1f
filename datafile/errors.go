// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package datafile

import "fmt"

// CorruptedError reports that the backing file (or an envelope read from
// it) violates a structural invariant the data file relies on.
type CorruptedError struct {
	Reason string
}

func (e *CorruptedError) Error() string {
	return fmt.Sprintf("datafile: corrupted: %s", e.Reason)
}

// ErrValueTooLong is returned by SetData when the replacement payload's
// serialized length differs from the stored one; callers should append a
// new record instead.
var ErrValueTooLong = fmt.Errorf("datafile: value too long for in-place update")

// ErrInvalidUsage marks a precondition violation: calling SetData on a
// Link payload, or any other call shape the data file does not support.
var ErrInvalidUsage = fmt.Errorf("datafile: invalid usage")
