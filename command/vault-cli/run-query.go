// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/command/vault-cli/rpccalls"
)

// connect, run one query and print its reply
func query(c *cli.Context, f func(client *rpccalls.Client) (interface{}, error)) error {
	m := getMetadata(c)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := f(client)
	if nil != err {
		return err
	}
	return printJson(m.w, reply)
}

func runState(c *cli.Context) error {
	return query(c, func(client *rpccalls.Client) (interface{}, error) {
		return client.State()
	})
}

func runAllowance(c *cli.Context) error {
	spender, err := checkAccount("spender", c.String("spender"))
	if nil != err {
		return err
	}
	return query(c, func(client *rpccalls.Client) (interface{}, error) {
		return client.Allowance(spender)
	})
}

func runAllowances(c *cli.Context) error {
	return query(c, func(client *rpccalls.Client) (interface{}, error) {
		return client.Allowances()
	})
}

func runCanDeposit(c *cli.Context) error {
	address, err := checkAccount("address", c.String("address"))
	if nil != err {
		return err
	}
	return query(c, func(client *rpccalls.Client) (interface{}, error) {
		return client.CanDeposit(address)
	})
}

func runDepositAddresses(c *cli.Context) error {
	return query(c, func(client *rpccalls.Client) (interface{}, error) {
		return client.DepositAddresses()
	})
}

func runBalances(c *cli.Context) error {
	return query(c, func(client *rpccalls.Client) (interface{}, error) {
		return client.Balances()
	})
}

func runInfo(c *cli.Context) error {
	return query(c, func(client *rpccalls.Client) (interface{}, error) {
		return client.Info()
	})
}
