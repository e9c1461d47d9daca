// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package operation - RPC service for the signed vault operations
package operation

import (
	"time"

	"github.com/bitmark-inc/logger"
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/ratelimit"
	"github.com/bitmark-inc/vaultd/rpc/router"
	"github.com/bitmark-inc/vaultd/vault"
)

// Operation
// ---------

const (
	rateLimitOperation = 100
	rateBurstOperation = 50

	// permitted difference between request timestamp and local clock
	maximumClockSkew = 5 * time.Minute
)

// Operation - type for the RPC
type Operation struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Router  *router.Router

	testing bool

	// signatures accepted within the clock skew window
	seen *cache.Cache
}

// New - create the service
func New(log *logger.L, r *router.Router, testing bool) *Operation {
	return &Operation{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOperation, rateBurstOperation),
		Router:  r,
		testing: testing,
		seen:    cache.New(2*maximumClockSkew, time.Minute),
	}
}

// Instantiate - create the vault
func (operation *Operation) Instantiate(arguments *InstantiateArguments, reply *vault.Response) error {

	if err := ratelimit.Limit(operation.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Message {
		return fault.ErrMissingParameters
	}

	if err := operation.authorise(InstantiateMethod, &arguments.Authorisation, arguments.Funds, arguments.Message); nil != err {
		return err
	}

	operation.Log.Infof("Operation.Instantiate: sender: %s  message: %+v", arguments.Sender, arguments.Message)

	response, err := operation.Router.Instantiate(arguments.Sender, arguments.Funds, arguments.Message)
	if nil != err {
		return err
	}
	*reply = *response
	return nil
}

// Execute - run one vault operation
func (operation *Operation) Execute(arguments *ExecuteArguments, reply *vault.Response) error {

	if err := ratelimit.Limit(operation.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Message {
		return fault.ErrMissingParameters
	}

	if err := operation.authorise(ExecuteMethod, &arguments.Authorisation, arguments.Funds, arguments.Message); nil != err {
		return err
	}

	operation.Log.Infof("Operation.Execute: sender: %s  action: %s  funds: %s", arguments.Sender, arguments.Message.Action(), arguments.Funds)

	response, err := operation.Router.Execute(arguments.Sender, arguments.Funds, arguments.Message)
	if nil != err {
		return err
	}
	*reply = *response
	return nil
}

// check the sender signed this request recently and only once
func (operation *Operation) authorise(method string, auth *Authorisation, funds coin.Coins, message interface{}) error {
	if nil == auth.Sender || 0 == len(auth.Signature) {
		return fault.ErrMissingParameters
	}

	if operation.testing != auth.Sender.IsTesting() {
		return fault.WithDetail(fault.ErrNotValidAddress, auth.Sender.String())
	}

	skew := time.Since(time.Unix(auth.Timestamp, 0))
	if skew > maximumClockSkew || skew < -maximumClockSkew {
		operation.Log.Debugf("%s: sender: %s  clock skew: %s", method, auth.Sender, skew)
		return fault.ErrInvalidTimestamp
	}

	packed, err := pack(method, auth, funds, message)
	if nil != err {
		return err
	}
	if err := auth.Sender.CheckSignature(packed, auth.Signature); nil != err {
		operation.Log.Warnf("%s: sender: %s  bad signature", method, auth.Sender)
		return err
	}

	if err := operation.seen.Add(string(auth.Signature), struct{}{}, cache.DefaultExpiration); nil != err {
		operation.Log.Warnf("%s: sender: %s  replayed request", method, auth.Sender)
		return fault.ErrDuplicateRequest
	}
	return nil
}
