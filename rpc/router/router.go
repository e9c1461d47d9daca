// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package router - run vault operations one at a time against the database
//
// each operation runs in its own storage transaction:
//   1. credit the attached funds to the bank
//   2. run the vault operation
//   3. pay the transfers it returned
//   4. commit, or abort everything if any step failed
package router

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/bank"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/metrics"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

// Router - the single writer for one vault database
type Router struct {
	sync.RWMutex

	log     *logger.L
	db      *storage.Database
	engine  *vault.Engine
	bank    *bank.Bank
	metrics *metrics.Metrics
}

// New - create a router, m may be nil to disable metrics
func New(log *logger.L, db *storage.Database, testing bool, m *metrics.Metrics) *Router {
	b := bank.New(logger.New("bank"), db.Balances)
	return &Router{
		log:     log,
		db:      db,
		engine:  vault.New(logger.New("vault"), &db.Pools, b, testing),
		bank:    b,
		metrics: m,
	}
}

// Instantiate - create the vault, only allowed once
func (r *Router) Instantiate(sender *account.Account, funds coin.Coins, msg *vault.InstantiateMsg) (*vault.Response, error) {
	if err := msg.Validate(); nil != err {
		return nil, err
	}
	return r.run("instantiate", sender, funds, func(trx storage.Transaction) (*vault.Response, error) {
		instantiated, err := r.engine.Instantiated(trx)
		if nil != err {
			return nil, err
		}
		if instantiated {
			return nil, fault.ErrAlreadyInstantiated
		}
		return r.engine.Instantiate(trx, sender, msg)
	})
}

// Execute - run one operation for the sender
func (r *Router) Execute(sender *account.Account, funds coin.Coins, msg *vault.Message) (*vault.Response, error) {
	if err := msg.Validate(); nil != err {
		return nil, err
	}
	return r.run(msg.Action(), sender, funds, func(trx storage.Transaction) (*vault.Response, error) {
		return r.engine.Execute(trx, sender, funds, msg)
	})
}

// Query - read committed data while no operation is running
func (r *Router) Query(f func(engine *vault.Engine, bank *bank.Bank) error) error {
	r.RLock()
	defer r.RUnlock()
	return f(r.engine, r.bank)
}

func (r *Router) run(action string, sender *account.Account, funds coin.Coins, operation func(storage.Transaction) (*vault.Response, error)) (*vault.Response, error) {
	if nil != r.metrics {
		timer := r.metrics.RequestTimer(action)
		defer timer.ObserveDuration()
	}

	r.Lock()
	defer r.Unlock()

	response, err := r.apply(sender, funds, operation)
	if nil != err {
		r.log.Warnf("%s: sender: %s  error: %s", action, sender, err)
		r.count(action, err)
		return nil, err
	}

	r.log.Infof("%s: sender: %s  attributes: %v", action, sender, response.Attributes)
	r.count(action, nil)
	r.observe(response)
	return response, nil
}

func (r *Router) apply(sender *account.Account, funds coin.Coins, operation func(storage.Transaction) (*vault.Response, error)) (*vault.Response, error) {
	trx, err := r.db.NewTransaction()
	if nil != err {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			trx.Abort()
		}
	}()

	if err := r.bank.Credit(trx, funds); nil != err {
		return nil, err
	}

	response, err := operation(trx)
	if nil != err {
		return nil, err
	}

	for _, t := range response.Transfers {
		if err := r.bank.Pay(trx, t.Recipient, t.Amount); nil != err {
			return nil, err
		}
	}

	if err := trx.Commit(); nil != err {
		r.log.Criticalf("commit failed: %s", err)
		return nil, err
	}
	committed = true

	return response, nil
}

func (r *Router) count(action string, err error) {
	if nil == r.metrics {
		return
	}
	status := metrics.StatusOK
	switch {
	case nil == err:
	case fault.IsErrInvalid(err), fault.IsErrPermission(err), fault.IsErrNotFound(err), fault.IsErrExists(err):
		status = metrics.StatusRejected
	default:
		status = metrics.StatusFailed
	}
	r.metrics.RequestCounter(action, status).Inc()
}

func (r *Router) observe(response *vault.Response) {
	if nil == r.metrics {
		return
	}
	for _, t := range response.Transfers {
		for _, c := range t.Amount {
			r.metrics.Transferred.WithLabelValues(c.Denom).Add(float64(c.Amount))
		}
	}

	state, err := r.engine.State()
	if nil != err {
		return
	}
	r.metrics.TotalAmount.Set(float64(state.TotalAmount))
}
