// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"testing"

	"github.com/btcsuite/btcutil"
)

func TestBlockSubsidyHalves(t *testing.T) {
	p := MainNetParams()

	cases := []struct {
		height uint64
		want   btcutil.Amount
	}{
		{0, 50_0000_0000},
		{209_999, 50_0000_0000},
		{210_000, 25_0000_0000},
		{420_000, 12_5000_0000},
	}

	for _, c := range cases {
		if got := BlockSubsidy(c.height, p); got != c.want {
			t.Errorf("BlockSubsidy(%d) = %d, want %d", c.height, got, c.want)
		}
	}
}

func TestBlockSubsidyExhausted(t *testing.T) {
	p := MainNetParams()
	height := p.SubsidyHalvingInterval * 64
	if got := BlockSubsidy(height, p); got != 0 {
		t.Errorf("BlockSubsidy(%d) = %d, want 0 after 64 halvings", height, got)
	}
}
