// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - throttle RPC services
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/vaultd/fault"
)

// maximum time a request may be held back before it is refused
const maximumDelay = 5 * time.Second

// Limit - limiting for a single request
func Limit(limiter *rate.Limiter) error {
	return LimitN(limiter, 1)
}

// LimitN - limiting for a request that costs count tokens
//
// a request whose wait would exceed the maximum delay is refused
// without consuming tokens
func LimitN(limiter *rate.Limiter, count int) error {
	if count <= 0 {
		return fault.ErrInvalidCount
	}

	r := limiter.ReserveN(time.Now(), count)
	if !r.OK() {
		return fault.ErrRateLimiting
	}

	delay := r.Delay()
	if delay > maximumDelay {
		r.Cancel()
		return fault.ErrRateLimiting
	}
	time.Sleep(delay)
	return nil
}
