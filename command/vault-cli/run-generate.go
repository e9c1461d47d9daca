// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/account"
)

type generateReply struct {
	Account    string `json:"account"`
	PrivateKey string `json:"private_key"`
	Testnet    bool   `json:"testnet"`
}

func runGenerate(c *cli.Context) error {

	m := getMetadata(c)

	key, err := account.NewPrivateKey(m.testnet)
	if nil != err {
		return err
	}

	return printJson(m.w, generateReply{
		Account:    key.Account().String(),
		PrivateKey: key.String(),
		Testnet:    m.testnet,
	})
}
