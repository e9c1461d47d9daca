// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/vault"
)

func runInstantiate(c *cli.Context) error {
	m := getMetadata(c)

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("name is required")
	}
	denom := c.String("denom")
	if !coin.ValidDenom(denom) {
		return fmt.Errorf("denom: %q is not valid", denom)
	}
	funds, err := coin.ParseCoins(c.String("funds"))
	if nil != err {
		return err
	}

	key, err := signingKey(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Instantiate(key, funds, &vault.InstantiateMsg{
		Name:          name,
		ExpectedDenom: denom,
	})
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

// sign and send one execute message
func execute(c *cli.Context, funds coin.Coins, msg *vault.Message) error {
	m := getMetadata(c)

	key, err := signingKey(m)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Execute(key, funds, msg)
	if nil != err {
		return err
	}
	return printJson(m.w, response)
}

func runDeposit(c *cli.Context) error {
	funds, err := coin.ParseCoins(c.String("funds"))
	if nil != err {
		return err
	}
	if 0 == len(funds) {
		return fmt.Errorf("funds are required")
	}
	return execute(c, funds, &vault.Message{Deposit: &vault.DepositMsg{}})
}

func runAddDepositAddress(c *cli.Context) error {
	address, err := checkAccount("address", c.String("address"))
	if nil != err {
		return err
	}
	return execute(c, nil, &vault.Message{AddDepositAddress: &vault.AddressMsg{Address: address}})
}

func runRemoveDepositAddress(c *cli.Context) error {
	address, err := checkAccount("address", c.String("address"))
	if nil != err {
		return err
	}
	return execute(c, nil, &vault.Message{RemoveDepositAddress: &vault.AddressMsg{Address: address}})
}

func runWithdraw(c *cli.Context) error {
	return execute(c, nil, &vault.Message{Withdraw: &vault.WithdrawMsg{}})
}

func allowanceArguments(c *cli.Context) (*vault.AllowanceMsg, error) {
	spender, err := checkAccount("spender", c.String("spender"))
	if nil != err {
		return nil, err
	}
	amount, err := checkAmount(c.String("amount"))
	if nil != err {
		return nil, err
	}
	return &vault.AllowanceMsg{Spender: spender, Amount: amount}, nil
}

func runAddAllowance(c *cli.Context) error {
	msg, err := allowanceArguments(c)
	if nil != err {
		return err
	}
	return execute(c, nil, &vault.Message{AddAllowance: msg})
}

func runUpdateAllowance(c *cli.Context) error {
	msg, err := allowanceArguments(c)
	if nil != err {
		return err
	}
	return execute(c, nil, &vault.Message{UpdateAllowance: msg})
}

// lengths are checked by the vault so a mismatch reports its error
func runAddAllowanceList(c *cli.Context) error {
	msg := &vault.AllowanceListMsg{
		Spenders: []string{},
		Amounts:  vault.Amounts{},
	}
	for _, s := range c.StringSlice("spender") {
		spender, err := checkAccount("spender", s)
		if nil != err {
			return err
		}
		msg.Spenders = append(msg.Spenders, spender)
	}
	for _, a := range c.StringSlice("amount") {
		amount, err := checkAmount(a)
		if nil != err {
			return err
		}
		msg.Amounts = append(msg.Amounts, amount)
	}
	return execute(c, nil, &vault.Message{AddAllowanceList: msg})
}

func runRemoveAllowance(c *cli.Context) error {
	spender, err := checkAccount("spender", c.String("spender"))
	if nil != err {
		return err
	}
	return execute(c, nil, &vault.Message{RemoveAllowance: &vault.SpenderMsg{Spender: spender}})
}

func runRetrieveAllowance(c *cli.Context) error {
	return execute(c, nil, &vault.Message{RetrieveAllowance: &vault.RetrieveMsg{}})
}

func runUpdateName(c *cli.Context) error {
	name := c.String("name")
	if "" == name {
		return fmt.Errorf("name is required")
	}
	return execute(c, nil, &vault.Message{UpdateName: &vault.UpdateNameMsg{Name: name}})
}

func runUpdateOwner(c *cli.Context) error {
	owner, err := checkAccount("owner", c.String("owner"))
	if nil != err {
		return err
	}
	return execute(c, nil, &vault.Message{UpdateOwner: &vault.UpdateOwnerMsg{Owner: owner}})
}
