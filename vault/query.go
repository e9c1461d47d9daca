// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/fault"
)

// AllowanceResponse - a single allowance
type AllowanceResponse struct {
	Spender string `json:"spender"`
	Amount  uint64 `json:"amount,string"`
}

// AllowancesResponse - all allowances in ascending key order
type AllowancesResponse struct {
	Spenders []string `json:"spenders"`
	Amounts  Amounts  `json:"amounts"`
}

// CanDepositResponse - whitelist membership
type CanDepositResponse struct {
	CanDeposit bool `json:"can_deposit"`
}

// DepositAddressesResponse - the whitelist in ascending key order
type DepositAddressesResponse struct {
	Addresses []string `json:"addresses"`
}

// queries read committed data, so the caller must not run them
// while a transaction is open

// State - the ledger record
func (e *Engine) State() (*State, error) {
	buffer, err := e.pools.State.Get(stateKey)
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, fault.ErrNotInstantiated
	}
	return unpackState(buffer)
}

// Allowance - the allowance of one spender
func (e *Engine) Allowance(spender string) (*AllowanceResponse, error) {
	a, err := e.validAddress(spender)
	if nil != err {
		return nil, err
	}

	amount, found, err := e.pools.Allowances.GetN(a.Bytes())
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.WithDetail(fault.ErrAllowanceNotFound, spender)
	}

	return &AllowanceResponse{
		Spender: spender,
		Amount:  amount,
	}, nil
}

// Allowances - every allowance as parallel lists
func (e *Engine) Allowances() (*AllowancesResponse, error) {
	result := &AllowancesResponse{
		Spenders: []string{},
		Amounts:  Amounts{},
	}

	err := e.pools.Allowances.NewFetchCursor().Map(func(key []byte, value []byte) error {
		spender, err := account.AccountFromBytes(key)
		if nil != err {
			return err
		}
		if 8 != len(value) {
			return fault.ErrTruncatedRecord
		}
		result.Spenders = append(result.Spenders, spender.String())
		result.Amounts = append(result.Amounts, binary.BigEndian.Uint64(value))
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}

// CanDeposit - whether an address is whitelisted
func (e *Engine) CanDeposit(address string) (*CanDepositResponse, error) {
	a, err := e.validAddress(address)
	if nil != err {
		return nil, err
	}

	found, err := e.pools.DepositAddresses.Has(a.Bytes())
	if nil != err {
		return nil, err
	}
	return &CanDepositResponse{
		CanDeposit: found,
	}, nil
}

// DepositAddresses - the whole whitelist
func (e *Engine) DepositAddresses() (*DepositAddressesResponse, error) {
	result := &DepositAddressesResponse{
		Addresses: []string{},
	}

	err := e.pools.DepositAddresses.NewFetchCursor().Map(func(key []byte, value []byte) error {
		a, err := account.AccountFromBytes(key)
		if nil != err {
			return err
		}
		result.Addresses = append(result.Addresses, a.String())
		return nil
	})
	if nil != err {
		return nil, err
	}
	return result, nil
}
