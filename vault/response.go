// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
)

// Attribute - a key/value event entry
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Transfer - value the host must send out of the vault
type Transfer struct {
	Recipient *account.Account `json:"recipient"`
	Amount    coin.Coins       `json:"amount"`
}

// Response - the result of a successful operation
type Response struct {
	Attributes []Attribute `json:"attributes"`
	Transfers  []Transfer  `json:"transfers,omitempty"`
}

func newResponse(action string) *Response {
	return &Response{
		Attributes: []Attribute{{Key: "action", Value: action}},
	}
}

func (r *Response) attribute(key string, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) transfer(recipient *account.Account, amount coin.Coins) *Response {
	r.Transfers = append(r.Transfers, Transfer{Recipient: recipient, Amount: amount})
	return r
}

// Attribute - value of the first attribute with the key
func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if key == a.Key {
			return a.Value, true
		}
	}
	return "", false
}
