// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package chain

// Flags tweaks ProcessBlock's normal behavior, mirroring BehaviorFlags
// from other full-node implementations: a caller can ask for a
// consensus-only check without touching persistent state.
type Flags struct {
	// FastAdd skips the orphan-draining cascade after a successful
	// accept, for bulk header-first style loading where the caller
	// will submit descendants itself in order.
	FastAdd bool

	// DryRun runs BlockAcceptor but performs no persistence and no
	// orphan-pool mutation.
	DryRun bool
}
