// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bank - value held by the vault, per denomination
//
// the bank stands in for the host ledger: attached funds are credited
// before an operation runs and the operation's transfers are paid
// after it succeeds, all inside the same storage transaction
package bank

import (
	"encoding/binary"
	"math/bits"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/storage"
)

// Bank - balances keyed by denomination
type Bank struct {
	log      *logger.L
	balances storage.Handle
}

// New - create a bank over a balance pool
func New(log *logger.L, balances storage.Handle) *Bank {
	return &Bank{
		log:      log,
		balances: balances,
	}
}

// Credit - add attached funds to the vault
//
// an overflowing balance rejects the whole credit
func (b *Bank) Credit(trx storage.Transaction, funds coin.Coins) error {
	for _, c := range funds {
		if !coin.ValidDenom(c.Denom) {
			return fault.WithDetail(fault.ErrInvalidDenom, c.Denom)
		}
		if 0 == c.Amount {
			continue
		}

		key := []byte(c.Denom)
		balance, _, err := trx.GetN(b.balances, key)
		if nil != err {
			return err
		}

		sum, carry := bits.Add64(balance, c.Amount, 0)
		if 0 != carry {
			return fault.WithDetail(fault.ErrInvalidAmount, c.String())
		}
		trx.PutN(b.balances, key, sum)

		b.log.Debugf("credit: %s  balance: %d", c, sum)
	}
	return nil
}

// Pay - send value out of the vault
func (b *Bank) Pay(trx storage.Transaction, recipient *account.Account, amount coin.Coins) error {
	for _, c := range amount {
		if 0 == c.Amount {
			continue
		}

		key := []byte(c.Denom)
		balance, _, err := trx.GetN(b.balances, key)
		if nil != err {
			return err
		}

		if balance < c.Amount {
			b.log.Warnf("pay: %s to: %s  balance only: %d", c, recipient, balance)
			return fault.WithDetail(fault.ErrInsufficientFunds, c.String())
		}

		remaining := balance - c.Amount
		if 0 == remaining {
			trx.Delete(b.balances, key)
		} else {
			trx.PutN(b.balances, key, remaining)
		}

		b.log.Infof("pay: %s to: %s  balance: %d", c, recipient, remaining)
	}
	return nil
}

// AllBalances - everything held, including this transaction's changes
func (b *Bank) AllBalances(trx storage.Transaction) (coin.Coins, error) {
	result := coin.Coins{}
	err := trx.Map(b.balances, func(key []byte, value []byte) error {
		c, err := decode(key, value)
		if nil != err {
			return err
		}
		result = append(result, c)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// Balances - everything held as last committed
func (b *Bank) Balances() (coin.Coins, error) {
	result := coin.Coins{}
	err := b.balances.NewFetchCursor().Map(func(key []byte, value []byte) error {
		c, err := decode(key, value)
		if nil != err {
			return err
		}
		result = append(result, c)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

func decode(key []byte, value []byte) (coin.Coin, error) {
	if 8 != len(value) {
		return coin.Coin{}, fault.WithDetail(fault.ErrTruncatedRecord, string(key))
	}
	return coin.New(binary.BigEndian.Uint64(value), string(key)), nil
}
