// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

// DeploymentState snapshots which soft forks are active for the
// candidate block under evaluation. It is computed by the caller
// (typically from height + BIP9 version-bits state, out of scope here)
// and handed to the acceptor as a plain value.
type DeploymentState struct {
	// CSVActive reports whether BIP68/BIP112/BIP113 (relative lock-time)
	// rules are in effect.
	CSVActive bool

	// SegwitActive reports whether BIP141/143/144 (segregated witness)
	// rules are in effect.
	SegwitActive bool
}
