// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/vaultd/counter"
)

func TestCounter(t *testing.T) {
	var c counter.Counter

	if !c.IsZero() {
		t.Fatalf("initial value: %d", c.Uint64())
	}
	if n := c.Increment(); 1 != n {
		t.Errorf("increment: %d", n)
	}
	if n := c.Decrement(); 0 != n {
		t.Errorf("decrement: %d", n)
	}
}

func TestAcquire(t *testing.T) {
	var c counter.Counter

	for i := 0; i < 3; i += 1 {
		if !c.Acquire(3) {
			t.Fatalf("%d: acquire failed below limit", i)
		}
	}
	if c.Acquire(3) {
		t.Error("acquire succeeded above limit")
	}
	if 3 != c.Uint64() {
		t.Errorf("value after refused acquire: %d", c.Uint64())
	}
}

func TestConcurrent(t *testing.T) {
	var c counter.Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increment()
			c.Increment()
			c.Decrement()
		}()
	}
	wg.Wait()

	if 50 != c.Uint64() {
		t.Errorf("final value: %d  expected: 50", c.Uint64())
	}
}
