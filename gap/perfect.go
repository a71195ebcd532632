// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gap

// IsPerfect returns whether the blocks, sorted by reference position, are
// contiguous on the query to within tolerance positions. Fewer than two
// blocks are never perfect.
//
// Sorting on the reference reverses query order for matches to the minus
// strand, so each pair is compared without assuming query direction.
func IsPerfect(blocks []Block, tolerance int) bool {
	if len(blocks) < 2 {
		return false
	}
	for i := 1; i < len(blocks); i++ {
		p, b := blocks[i-1], blocks[i]
		diff := max(p.Q1, b.Q1) - min(p.Q2, b.Q2) - 1
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
