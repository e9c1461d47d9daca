// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultd/bank"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/metrics"
	"github.com/bitmark-inc/vaultd/rpc/router"
	"github.com/bitmark-inc/vaultd/vault"
)

const (
	reportInterval = time.Minute
)

// periodically log the vault totals and keep the gauge current
// between operations
type reporter struct {
	log      *logger.L
	router   *router.Router
	metrics  *metrics.Metrics
	interval time.Duration
}

// Run - background process
func (r *reporter) Run(args interface{}, shutdown <-chan struct{}) {
	r.report()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			r.report()
		}
	}
}

func (r *reporter) report() {
	err := r.router.Query(func(engine *vault.Engine, b *bank.Bank) error {
		state, err := engine.State()
		if nil != err {
			return err
		}
		balances, err := b.Balances()
		if nil != err {
			return err
		}

		r.log.Infof("vault: %q  total: %d%s  balances: %s", state.Name, state.TotalAmount, state.ExpectedDenom, balances)
		if nil != r.metrics {
			r.metrics.TotalAmount.Set(float64(state.TotalAmount))
		}
		return nil
	})

	switch {
	case nil == err:
	case fault.ErrNotInstantiated == err:
		r.log.Debug("vault is not instantiated")
	default:
		r.log.Errorf("report error: %s", err)
	}
}
