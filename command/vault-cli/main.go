// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/vaultd/chain"
)

type metadata struct {
	connect string
	key     string
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "vault-cli"
	app.Usage = "operate a vaultd fund vault"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Testing,
			Usage: " connect to vaultd on `NETWORK` [bitmark|testing|local]",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2230",
			Usage:  " vaultd host/IP and port, `HOST:PORT`",
			EnvVar: "VAULT_CONNECT",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  " base58 private `KEY` that signs operations",
			EnvVar: "VAULT_KEY",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair for the selected network",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "instantiate",
			Usage:     "create the vault, the signing key becomes the owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*vault `NAME`",
				},
				cli.StringFlag{
					Name:  "denom, d",
					Value: "",
					Usage: "*expected `DENOM` of deposits",
				},
				fundsFlag,
			},
			Action: runInstantiate,
		},
		{
			Name:      "deposit",
			Usage:     "deposit funds of the expected denomination",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				fundsFlag,
			},
			Action: runDeposit,
		},
		{
			Name:      "add-deposit-address",
			Usage:     "allow an address to deposit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				addressFlag,
			},
			Action: runAddDepositAddress,
		},
		{
			Name:      "remove-deposit-address",
			Usage:     "stop an address from depositing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				addressFlag,
			},
			Action: runRemoveDepositAddress,
		},
		{
			Name:      "withdraw",
			Usage:     "send everything the vault holds to the owner",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runWithdraw,
		},
		{
			Name:      "add-allowance",
			Usage:     "set the allowance of a spender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				spenderFlag,
				amountFlag,
			},
			Action: runAddAllowance,
		},
		{
			Name:      "update-allowance",
			Usage:     "replace the allowance of a spender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				spenderFlag,
				amountFlag,
			},
			Action: runUpdateAllowance,
		},
		{
			Name:      "add-allowance-list",
			Usage:     "set several allowances at once",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "spender, s",
					Usage: "*spender `ACCOUNT`, repeat for each entry",
				},
				cli.StringSliceFlag{
					Name:  "amount, a",
					Usage: "*allowance `AMOUNT`, repeat for each entry",
				},
			},
			Action: runAddAllowanceList,
		},
		{
			Name:      "remove-allowance",
			Usage:     "delete the allowance of a spender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				spenderFlag,
			},
			Action: runRemoveAllowance,
		},
		{
			Name:      "retrieve-allowance",
			Usage:     "receive the allowance of the signing key",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runRetrieveAllowance,
		},
		{
			Name:      "update-name",
			Usage:     "rename the vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*new vault `NAME`",
				},
			},
			Action: runUpdateName,
		},
		{
			Name:      "update-owner",
			Usage:     "hand the vault to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*new owner `ACCOUNT`",
				},
			},
			Action: runUpdateOwner,
		},
		{
			Name:   "state",
			Usage:  "display the vault state",
			Action: runState,
		},
		{
			Name:      "allowance",
			Usage:     "display the allowance of one spender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				spenderFlag,
			},
			Action: runAllowance,
		},
		{
			Name:   "allowances",
			Usage:  "display every allowance",
			Action: runAllowances,
		},
		{
			Name:      "can-deposit",
			Usage:     "check whether an address may deposit",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				addressFlag,
			},
			Action: runCanDeposit,
		},
		{
			Name:   "deposit-addresses",
			Usage:  "display the deposit whitelist",
			Action: runDepositAddresses,
		},
		{
			Name:   "balances",
			Usage:  "display the coins held by the vault",
			Action: runBalances,
		},
		{
			Name:   "info",
			Usage:  "display vaultd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display vault-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		// only want one of these
		network := c.GlobalString("network")
		switch network {
		case "bitmark", "live":
			network = chain.Bitmark
		case "testing", "test":
			network = chain.Testing
		case "local", "regression":
			network = chain.Local
		default:
			return fmt.Errorf("network: %q can only be bitmark/testing/local", network)
		}

		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			key:     c.GlobalString("key"),
			testnet: chain.IsTesting(network),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}

// flags shared by several commands
var (
	fundsFlag = cli.StringFlag{
		Name:  "funds, f",
		Value: "",
		Usage: " attached coins e.g. `10uatom,5ubtc`",
	}
	addressFlag = cli.StringFlag{
		Name:  "address, a",
		Value: "",
		Usage: "*depositor `ACCOUNT`",
	}
	spenderFlag = cli.StringFlag{
		Name:  "spender, s",
		Value: "",
		Usage: "*spender `ACCOUNT`",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount, a",
		Value: "",
		Usage: "*allowance `AMOUNT`",
	}
)
