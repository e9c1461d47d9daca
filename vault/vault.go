// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/storage"
)

//go:generate mockgen -destination=mocks/balance_querier.go -package=mocks github.com/bitmark-inc/vaultd/vault BalanceQuerier

// BalanceQuerier - the host's view of all value held by the vault
type BalanceQuerier interface {
	AllBalances(storage.Transaction) (coin.Coins, error)
}

// Engine - the vault operations over one database
type Engine struct {
	log     *logger.L
	pools   *storage.Pools
	bank    BalanceQuerier
	testing bool
}

// New - create an engine
//
// testing selects which network's accounts are valid addresses
func New(log *logger.L, pools *storage.Pools, bank BalanceQuerier, testing bool) *Engine {
	return &Engine{
		log:     log,
		pools:   pools,
		bank:    bank,
		testing: testing,
	}
}

// Instantiated - true once the ledger record exists
func (e *Engine) Instantiated(trx storage.Transaction) (bool, error) {
	return trx.Has(e.pools.State, stateKey)
}

// Instantiate - create the ledger with the sender as owner
//
// the owner is also whitelisted for deposit
func (e *Engine) Instantiate(trx storage.Transaction, sender *account.Account, msg *InstantiateMsg) (*Response, error) {
	if err := msg.Validate(); nil != err {
		return nil, err
	}

	state := &State{
		Owner:         sender,
		Name:          msg.Name,
		TotalAmount:   0,
		ExpectedDenom: msg.ExpectedDenom,
	}
	e.saveState(trx, state)
	trx.PutN(e.pools.DepositAddresses, sender.Bytes(), 0)

	e.log.Infof("instantiate: name: %q  denom: %s  owner: %s", msg.Name, msg.ExpectedDenom, sender)

	return newResponse("instantiate"), nil
}

// Execute - run one operation for the sender
//
// funds are the coins the host has already credited to the vault
func (e *Engine) Execute(trx storage.Transaction, sender *account.Account, funds coin.Coins, msg *Message) (*Response, error) {
	if err := msg.Validate(); nil != err {
		return nil, err
	}

	state, err := e.loadState(trx)
	if nil != err {
		return nil, err
	}

	switch {
	case nil != msg.Deposit:
		return e.deposit(trx, state, sender, funds)
	case nil != msg.AddDepositAddress:
		return e.addDepositAddress(trx, state, sender, msg.AddDepositAddress.Address)
	case nil != msg.RemoveDepositAddress:
		return e.removeDepositAddress(trx, state, sender, msg.RemoveDepositAddress.Address)
	case nil != msg.Withdraw:
		return e.withdraw(trx, state, sender)
	case nil != msg.AddAllowance:
		return e.setAllowance(trx, state, sender, "add_allowance", msg.AddAllowance)
	case nil != msg.UpdateAllowance:
		return e.setAllowance(trx, state, sender, "update_allowance", msg.UpdateAllowance)
	case nil != msg.AddAllowanceList:
		return e.addAllowanceList(trx, state, sender, msg.AddAllowanceList)
	case nil != msg.RemoveAllowance:
		return e.removeAllowance(trx, state, sender, msg.RemoveAllowance.Spender)
	case nil != msg.RetrieveAllowance:
		return e.retrieveAllowance(trx, state, sender)
	case nil != msg.UpdateName:
		return e.updateName(trx, state, sender, msg.UpdateName.Name)
	case nil != msg.UpdateOwner:
		return e.updateOwner(trx, state, sender, msg.UpdateOwner.Owner)
	}
	return nil, fault.ErrInvalidMessage
}

// the single owner check for all administrative operations
func requireOwner(state *State, sender *account.Account) error {
	if !state.Owner.Equal(sender) {
		return fault.WithDetail(fault.ErrNotOwner, state.Owner.String())
	}
	return nil
}

// decode an address and check it belongs to this network
func (e *Engine) validAddress(address string) (*account.Account, error) {
	a, err := account.AccountFromBase58(address)
	if nil != err {
		return nil, fault.WithDetail(fault.ErrNotValidAddress, address)
	}
	if e.testing != a.IsTesting() {
		return nil, fault.WithDetail(fault.ErrNotValidAddress, address)
	}
	return a, nil
}

func (e *Engine) loadState(trx storage.Transaction) (*State, error) {
	buffer, err := trx.Get(e.pools.State, stateKey)
	if nil != err {
		return nil, err
	}
	if nil == buffer {
		return nil, fault.ErrNotInstantiated
	}
	return unpackState(buffer)
}

func (e *Engine) saveState(trx storage.Transaction, state *State) {
	trx.Put(e.pools.State, stateKey, state.pack())
}
