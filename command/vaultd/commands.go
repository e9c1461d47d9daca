// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultd/bank"
	"github.com/bitmark-inc/vaultd/chain"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "dump-state", "dump":
		return false // defer processing until configuration is read

	case "start", "run":
		return false // continue processing

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert               (rpc)    - create private key in: %q\n", "rpc.key")
		fmt.Printf("                                        and certificate in: %q\n", "rpc.crt")
		fmt.Printf("  gen-rpc-cert DIR           (rpc)    - create rpc.key and rpc.crt in DIR\n")
		fmt.Printf("  gen-rpc-cert DIR IPs...    (rpc)    - create rpc.key and rpc.crt in DIR\n")
		fmt.Printf("                                        and the certificate also covers the IPs\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-state                 (dump)   - print the vault state, whitelist,\n")
		fmt.Printf("                                        allowances and balances as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")
		exitwithstatus.Exit(1)
	}

	// indicate processing complete and prefor normal exit from main
	return true
}

// data command handler
//
// these open the internal database read only, the daemon must not
// be running as it holds the database lock
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "dump-state", "dump":
		db, err := storage.Open(options.Database.Name, storage.ReadOnly)
		if nil != err {
			exitwithstatus.Message("open database: %q  error: %s", options.Database.Name, err)
		}
		defer db.Close()

		err = dumpState(os.Stdout, log, db, chain.IsTesting(options.Chain))
		if nil != err {
			exitwithstatus.Message("dump-state error: %s", err)
		}

	default:
		return false
	}

	return true
}

// everything held in the database
type stateDump struct {
	State            *vault.State                    `json:"state"`
	DepositAddresses *vault.DepositAddressesResponse `json:"deposit_addresses"`
	Allowances       *vault.AllowancesResponse       `json:"allowances"`
	Balances         coin.Coins                      `json:"balances"`
}

func dumpState(handle io.Writer, log *logger.L, db *storage.Database, testing bool) error {
	b := bank.New(log, db.Balances)
	engine := vault.New(log, &db.Pools, b, testing)

	state, err := engine.State()
	if nil != err {
		return err
	}

	result := stateDump{
		State: state,
	}

	result.DepositAddresses, err = engine.DepositAddresses()
	if nil != err {
		return err
	}

	result.Allowances, err = engine.Allowances()
	if nil != err {
		return err
	}

	result.Balances, err = b.Balances()
	if nil != err {
		return err
	}

	return printJson(handle, result)
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	_, err = fmt.Fprintf(handle, "%s\n", b)
	return err
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
