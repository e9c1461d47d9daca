// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package coin_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
)

func TestParse(t *testing.T) {
	items := []struct {
		text   string
		amount uint64
		denom  string
		ok     bool
	}{
		{"10atom", 10, "atom", true},
		{" 7 uatom ", 7, "uatom", true},
		{"0ibc/27394FB092D2", 0, "ibc/27394FB092D2", true},
		{"18446744073709551615atom", 18446744073709551615, "atom", true},
		{"18446744073709551616atom", 0, "", false},
		{"atom", 0, "", false},
		{"10", 0, "", false},
		{"10at", 0, "", false},
		{"-1atom", 0, "", false},
		{"", 0, "", false},
	}
	for i, item := range items {
		c, err := coin.Parse(item.text)
		if !item.ok {
			assert.True(t, errors.Is(err, fault.ErrInvalidAmount), "%d: %q: error: %v", i, item.text, err)
			continue
		}
		if !assert.Nil(t, err, "%d: %q", i, item.text) {
			continue
		}
		assert.Equal(t, item.amount, c.Amount, "%d: amount", i)
		assert.Equal(t, item.denom, c.Denom, "%d: denom", i)
	}
}

func TestParseCoins(t *testing.T) {
	coins, err := coin.ParseCoins("5btc, 10atom,3atom")
	assert.Nil(t, err)
	assert.Equal(t, coin.Coins{coin.New(5, "btc"), coin.New(10, "atom"), coin.New(3, "atom")}, coins)
	assert.Equal(t, "5btc,10atom,3atom", coins.String())

	c, found := coins.Find("atom")
	assert.True(t, found)
	assert.Equal(t, uint64(10), c.Amount, "first match wins")

	_, found = coins.Find("eth")
	assert.False(t, found)

	empty, err := coin.ParseCoins("  ")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(empty))
	assert.True(t, empty.IsZero())

	_, err = coin.ParseCoins("5btc,,")
	assert.NotNil(t, err)
}

func TestJSON(t *testing.T) {
	buffer, err := json.Marshal(coin.New(42, "atom"))
	assert.Nil(t, err)
	assert.Equal(t, `{"denom":"atom","amount":"42"}`, string(buffer))

	var c coin.Coin
	assert.Nil(t, json.Unmarshal([]byte(`{"denom":"btc","amount":"9"}`), &c))
	assert.Equal(t, coin.New(9, "btc"), c)
}

func TestValidDenom(t *testing.T) {
	assert.True(t, coin.ValidDenom("atom"))
	assert.True(t, coin.ValidDenom("ibc/ABC"))
	assert.False(t, coin.ValidDenom("at"))
	assert.False(t, coin.ValidDenom("1atom"))
}
