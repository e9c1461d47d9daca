// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - lock free counting of in-flight items such as
// client connections
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned value that is safe to change from
// several goroutines
type Counter uint64

// Increment - add 1 and return the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract 1 and return the new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Acquire - increment unless that would exceed limit
//
// returns false and leaves the counter unchanged when the limit is reached
func (c *Counter) Acquire(limit uint64) bool {
	if c.Increment() <= limit {
		return true
	}
	c.Decrement()
	return false
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - check if zero
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}
