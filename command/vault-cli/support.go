// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/command/vault-cli/rpccalls"
	"github.com/bitmark-inc/vaultd/fault"
)

func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.testnet, m.connect, m.verbose, m.e)
}

// the signing key from --key or VAULT_KEY
func signingKey(m *metadata) (*account.PrivateKey, error) {
	if "" == m.key {
		return nil, fmt.Errorf("signing key is required")
	}
	key, err := account.PrivateKeyFromBase58(m.key)
	if nil != err {
		return nil, err
	}
	if m.testnet != key.IsTesting() {
		return nil, fault.ErrWrongNetworkForPublicKey
	}
	return key, nil
}

func checkAccount(name string, value string) (string, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return "", fmt.Errorf("%s is required", name)
	}
	if _, err := account.AccountFromBase58(value); nil != err {
		return "", fmt.Errorf("%s: %q  error: %s", name, value, err)
	}
	return value, nil
}

func checkAmount(value string) (uint64, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return 0, fmt.Errorf("amount is required")
	}
	amount, err := strconv.ParseUint(value, 10, 64)
	if nil != err {
		return 0, fmt.Errorf("amount: %q  error: %s", value, err)
	}
	return amount, nil
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}
