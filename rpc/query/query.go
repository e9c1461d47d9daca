// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - RPC service for the read only vault queries
package query

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/vaultd/bank"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/ratelimit"
	"github.com/bitmark-inc/vaultd/rpc/router"
	"github.com/bitmark-inc/vaultd/vault"
)

const (
	rateLimitQuery = 200
	rateBurstQuery = 100
)

// Query - type for the RPC
type Query struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Router  *router.Router
}

// Arguments - empty arguments for queries without parameters
type Arguments struct{}

// SpenderArguments - arguments for RPC
type SpenderArguments struct {
	Spender string `json:"spender"` // base58
}

// AddressArguments - arguments for RPC
type AddressArguments struct {
	Address string `json:"address"` // base58
}

// BalancesReply - coins held by the vault
type BalancesReply struct {
	Balances coin.Coins `json:"balances"`
}

// New - create the service
func New(log *logger.L, r *router.Router) *Query {
	return &Query{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitQuery, rateBurstQuery),
		Router:  r,
	}
}

// State - owner, name, total amount and denomination
func (query *Query) State(_ *Arguments, reply *vault.State) error {
	if err := ratelimit.Limit(query.Limiter); nil != err {
		return err
	}

	return query.Router.Query(func(engine *vault.Engine, _ *bank.Bank) error {
		state, err := engine.State()
		if nil != err {
			return err
		}
		*reply = *state
		return nil
	})
}

// Allowance - the remaining allowance of one spender
func (query *Query) Allowance(arguments *SpenderArguments, reply *vault.AllowanceResponse) error {
	if err := ratelimit.Limit(query.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.Spender {
		return fault.ErrMissingParameters
	}

	query.Log.Debugf("Query.Allowance: %s", arguments.Spender)

	return query.Router.Query(func(engine *vault.Engine, _ *bank.Bank) error {
		allowance, err := engine.Allowance(arguments.Spender)
		if nil != err {
			return err
		}
		*reply = *allowance
		return nil
	})
}

// Allowances - every spender with an allowance
func (query *Query) Allowances(_ *Arguments, reply *vault.AllowancesResponse) error {
	if err := ratelimit.Limit(query.Limiter); nil != err {
		return err
	}

	return query.Router.Query(func(engine *vault.Engine, _ *bank.Bank) error {
		allowances, err := engine.Allowances()
		if nil != err {
			return err
		}
		*reply = *allowances
		return nil
	})
}

// CanDeposit - whether an address is on the deposit whitelist
func (query *Query) CanDeposit(arguments *AddressArguments, reply *vault.CanDepositResponse) error {
	if err := ratelimit.Limit(query.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.Address {
		return fault.ErrMissingParameters
	}

	return query.Router.Query(func(engine *vault.Engine, _ *bank.Bank) error {
		canDeposit, err := engine.CanDeposit(arguments.Address)
		if nil != err {
			return err
		}
		*reply = *canDeposit
		return nil
	})
}

// DepositAddresses - the deposit whitelist
func (query *Query) DepositAddresses(_ *Arguments, reply *vault.DepositAddressesResponse) error {
	if err := ratelimit.Limit(query.Limiter); nil != err {
		return err
	}

	return query.Router.Query(func(engine *vault.Engine, _ *bank.Bank) error {
		addresses, err := engine.DepositAddresses()
		if nil != err {
			return err
		}
		*reply = *addresses
		return nil
	})
}

// Balances - the coins the vault holds
func (query *Query) Balances(_ *Arguments, reply *BalancesReply) error {
	if err := ratelimit.Limit(query.Limiter); nil != err {
		return err
	}

	return query.Router.Query(func(_ *vault.Engine, b *bank.Bank) error {
		balances, err := b.Balances()
		if nil != err {
			return err
		}
		reply.Balances = balances
		return nil
	})
}
