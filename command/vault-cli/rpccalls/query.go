// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/vaultd/rpc/node"
	"github.com/bitmark-inc/vaultd/rpc/query"
	"github.com/bitmark-inc/vaultd/vault"
)

// State - the vault ledger record
func (client *Client) State() (*vault.State, error) {
	var reply vault.State
	if err := client.call("Query.State", &query.Arguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Allowance - one spender's allowance
func (client *Client) Allowance(spender string) (*vault.AllowanceResponse, error) {
	var reply vault.AllowanceResponse
	if err := client.call("Query.Allowance", &query.SpenderArguments{Spender: spender}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Allowances - every allowance
func (client *Client) Allowances() (*vault.AllowancesResponse, error) {
	var reply vault.AllowancesResponse
	if err := client.call("Query.Allowances", &query.Arguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// CanDeposit - whitelist membership
func (client *Client) CanDeposit(address string) (*vault.CanDepositResponse, error) {
	var reply vault.CanDepositResponse
	if err := client.call("Query.CanDeposit", &query.AddressArguments{Address: address}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// DepositAddresses - the whitelist
func (client *Client) DepositAddresses() (*vault.DepositAddressesResponse, error) {
	var reply vault.DepositAddressesResponse
	if err := client.call("Query.DepositAddresses", &query.Arguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Balances - coins held by the vault
func (client *Client) Balances() (*query.BalancesReply, error) {
	var reply query.BalancesReply
	if err := client.call("Query.Balances", &query.Arguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Info - request status from vaultd
func (client *Client) Info() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := client.call("Node.Info", &node.InfoArguments{}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
