// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"testing"
	"time"
)

func TestMedianTimePastOddCount(t *testing.T) {
	base := time.Unix(1_600_000_000, 0)
	var times []time.Time
	for i := 0; i < 5; i++ {
		times = append(times, base.Add(time.Duration(i)*time.Minute))
	}

	got := MedianTimePast(times)
	want := base.Add(2 * time.Minute)
	if !got.Equal(want) {
		t.Errorf("MedianTimePast() = %v, want %v", got, want)
	}
}

func TestMedianTimePastTakesLastWindow(t *testing.T) {
	base := time.Unix(1_600_000_000, 0)
	var times []time.Time
	for i := 0; i < 20; i++ {
		times = append(times, base.Add(time.Duration(i)*time.Minute))
	}

	got := MedianTimePast(times)
	// last MedianTimeWindow (11) entries are indices 9..19; median is index 14.
	want := base.Add(14 * time.Minute)
	if !got.Equal(want) {
		t.Errorf("MedianTimePast() = %v, want %v", got, want)
	}
}
