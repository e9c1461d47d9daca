// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"time"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/operation"
	"github.com/bitmark-inc/vaultd/vault"
)

// Instantiate - create the vault with the key as owner
func (client *Client) Instantiate(key *account.PrivateKey, funds coin.Coins, msg *vault.InstantiateMsg) (*vault.Response, error) {
	if client.testnet != key.IsTesting() {
		return nil, fault.ErrWrongNetworkForPublicKey
	}
	if err := msg.Validate(); nil != err {
		return nil, err
	}

	arguments := operation.InstantiateArguments{
		Funds:   funds,
		Message: msg,
	}
	if err := arguments.Sign(key, time.Now()); nil != err {
		return nil, err
	}

	var reply vault.Response
	if err := client.call(operation.InstantiateMethod, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Execute - run one signed operation
func (client *Client) Execute(key *account.PrivateKey, funds coin.Coins, msg *vault.Message) (*vault.Response, error) {
	if client.testnet != key.IsTesting() {
		return nil, fault.ErrWrongNetworkForPublicKey
	}
	if err := msg.Validate(); nil != err {
		return nil, err
	}

	arguments := operation.ExecuteArguments{
		Funds:   funds,
		Message: msg,
	}
	if err := arguments.Sign(key, time.Now()); nil != err {
		return nil, err
	}

	var reply vault.Response
	if err := client.call(operation.ExecuteMethod, &arguments, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
