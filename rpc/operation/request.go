// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/vault"
)

// RPC method names, part of the signed content
const (
	InstantiateMethod = "Operation.Instantiate"
	ExecuteMethod     = "Operation.Execute"
)

// Authorisation - identifies the caller of an operation
//
// the signature covers the method, sender, timestamp, funds and message
type Authorisation struct {
	Sender    *account.Account  `json:"sender"`    // base58
	Timestamp int64             `json:"timestamp"` // unix seconds
	Signature account.Signature `json:"signature"` // hex
}

// InstantiateArguments - arguments for RPC
type InstantiateArguments struct {
	Authorisation
	Funds   coin.Coins            `json:"funds"`
	Message *vault.InstantiateMsg `json:"message"`
}

// ExecuteArguments - arguments for RPC
type ExecuteArguments struct {
	Authorisation
	Funds   coin.Coins     `json:"funds"`
	Message *vault.Message `json:"message"`
}

// the content that is signed
type signedContent struct {
	Method    string           `json:"method"`
	Sender    *account.Account `json:"sender"`
	Timestamp int64            `json:"timestamp"`
	Funds     coin.Coins       `json:"funds"`
	Message   interface{}      `json:"message"`
}

func pack(method string, auth *Authorisation, funds coin.Coins, message interface{}) ([]byte, error) {
	return json.Marshal(signedContent{
		Method:    method,
		Sender:    auth.Sender,
		Timestamp: auth.Timestamp,
		Funds:     funds,
		Message:   message,
	})
}

func (auth *Authorisation) sign(key *account.PrivateKey, now time.Time, method string, funds coin.Coins, message interface{}) error {
	auth.Sender = key.Account()
	auth.Timestamp = now.Unix()
	auth.Signature = nil

	packed, err := pack(method, auth, funds, message)
	if nil != err {
		return err
	}
	auth.Signature = key.Sign(packed)
	return nil
}

// Sign - set the sender and sign the request
func (arguments *InstantiateArguments) Sign(key *account.PrivateKey, now time.Time) error {
	return arguments.sign(key, now, InstantiateMethod, arguments.Funds, arguments.Message)
}

// Sign - set the sender and sign the request
func (arguments *ExecuteArguments) Sign(key *account.PrivateKey, now time.Time) error {
	return arguments.sign(key, now, ExecuteMethod, arguments.Funds, arguments.Message)
}
