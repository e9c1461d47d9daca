// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coin - amounts of value tagged with a unit (denom)
package coin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bitmark-inc/vaultd/fault"
)

// Coin - an amount in a single denomination
type Coin struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount,string"`
}

// Coins - several amounts, possibly of different denominations
type Coins []Coin

var (
	denomPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9/:._-]{2,127}$`)
	coinPattern  = regexp.MustCompile(`^([0-9]+)\s*([a-zA-Z][a-zA-Z0-9/:._-]{2,127})$`)
)

// New - create a coin
func New(amount uint64, denom string) Coin {
	return Coin{
		Denom:  denom,
		Amount: amount,
	}
}

// ValidDenom - check the syntax of a denomination
func ValidDenom(denom string) bool {
	return denomPattern.MatchString(denom)
}

// Parse - decode text of the form "10atom"
func Parse(s string) (Coin, error) {
	match := coinPattern.FindStringSubmatch(strings.TrimSpace(s))
	if nil == match {
		return Coin{}, fault.WithDetail(fault.ErrInvalidAmount, s)
	}
	amount, err := strconv.ParseUint(match[1], 10, 64)
	if nil != err {
		return Coin{}, fault.WithDetail(fault.ErrInvalidAmount, s)
	}
	return New(amount, match[2]), nil
}

// ParseCoins - decode a comma separated list, blank gives no coins
func ParseCoins(s string) (Coins, error) {
	s = strings.TrimSpace(s)
	if "" == s {
		return Coins{}, nil
	}
	items := strings.Split(s, ",")
	coins := make(Coins, 0, len(items))
	for _, item := range items {
		c, err := Parse(item)
		if nil != err {
			return nil, err
		}
		coins = append(coins, c)
	}
	return coins, nil
}

// String - text form e.g. "10atom"
func (c Coin) String() string {
	return strconv.FormatUint(c.Amount, 10) + c.Denom
}

// String - comma separated text form
func (coins Coins) String() string {
	s := make([]string, len(coins))
	for i, c := range coins {
		s[i] = c.String()
	}
	return strings.Join(s, ",")
}

// Find - the first coin of the given denomination
func (coins Coins) Find(denom string) (Coin, bool) {
	for _, c := range coins {
		if denom == c.Denom {
			return c, true
		}
	}
	return Coin{}, false
}

// IsZero - no coins or all amounts zero
func (coins Coins) IsZero() bool {
	for _, c := range coins {
		if 0 != c.Amount {
			return false
		}
	}
	return true
}
