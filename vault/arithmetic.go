// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"math/bits"
)

// a + b, or a unchanged if the sum would overflow
func addOrKeep(a uint64, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if 0 != carry {
		return a
	}
	return sum
}

// a - b clamped to zero
func saturatingSub(a uint64, b uint64) uint64 {
	difference, borrow := bits.Sub64(a, b, 0)
	if 0 != borrow {
		return 0
	}
	return difference
}
