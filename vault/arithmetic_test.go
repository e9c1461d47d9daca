// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddOrKeep(t *testing.T) {
	tests := []struct {
		a, b     uint64
		expected uint64
	}{
		{0, 0, 0},
		{1, 2, 3},
		{math.MaxUint64 - 1, 1, math.MaxUint64},
		{math.MaxUint64 - 1, 2, math.MaxUint64 - 1},
		{math.MaxUint64 - 1, 5, math.MaxUint64 - 1},
		{math.MaxUint64, 1, math.MaxUint64},
		{7, math.MaxUint64, 7},
	}

	for i, test := range tests {
		assert.Equal(t, test.expected, addOrKeep(test.a, test.b), "%d: %d + %d", i, test.a, test.b)
	}
}

func TestSaturatingSub(t *testing.T) {
	tests := []struct {
		a, b     uint64
		expected uint64
	}{
		{0, 0, 0},
		{10, 4, 6},
		{4, 4, 0},
		{3, 5, 0},
		{0, math.MaxUint64, 0},
		{math.MaxUint64, 1, math.MaxUint64 - 1},
	}

	for i, test := range tests {
		assert.Equal(t, test.expected, saturatingSub(test.a, test.b), "%d: %d - %d", i, test.a, test.b)
	}
}
