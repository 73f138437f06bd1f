// Copyright 2018 The Gringo Developers. All rights reserved.
// Use of this source code is governed by a GNU GENERAL PUBLIC LICENSE v3
// license that can be found in the LICENSE file.

package consensus

import (
	"sort"
	"time"
)

// MedianTimeWindow is the number of past headers the finality check's
// median-time-past cutoff is computed over.
const MedianTimeWindow = 11

// MedianTimePast sorts headers' timestamps and returns the one at the
// middle index, following BIP113's median-time-past definition. headers
// need not already be sorted; at most MedianTimeWindow of them are
// considered: if more are passed, only the last MedianTimeWindow entries
// of the slice are used.
func MedianTimePast(headers []time.Time) time.Time {
	if len(headers) == 0 {
		return time.Time{}
	}

	window := headers
	if len(window) > MedianTimeWindow {
		window = window[len(window)-MedianTimeWindow:]
	}

	sorted := make([]time.Time, len(window))
	copy(sorted, window)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	return sorted[len(sorted)/2]
}
