// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"strconv"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/storage"
)

// the first coin of the expected denomination is the deposit
func (e *Engine) deposit(trx storage.Transaction, state *State, sender *account.Account, funds coin.Coins) (*Response, error) {
	c, ok := funds.Find(state.ExpectedDenom)
	if !ok {
		e.log.Debugf("deposit: %s  no %s in: %s", sender, state.ExpectedDenom, funds)
		return nil, fault.WithDetail(fault.ErrInvalidDenom, state.ExpectedDenom)
	}

	key := sender.Bytes()
	deposited, found, err := trx.GetN(e.pools.DepositAddresses, key)
	if nil != err {
		return nil, err
	}
	if !found {
		e.log.Warnf("deposit: %s  not whitelisted", sender)
		return nil, fault.WithDetail(fault.ErrUnauthorizedDepositAddress, sender.String())
	}

	trx.PutN(e.pools.DepositAddresses, key, addOrKeep(deposited, c.Amount))

	state.TotalAmount = addOrKeep(state.TotalAmount, c.Amount)
	e.saveState(trx, state)

	e.log.Infof("deposit: %s  amount: %d  total: %d", sender, c.Amount, state.TotalAmount)

	return newResponse("deposit").
		attribute("address", sender.String()).
		attribute("amount", strconv.FormatUint(c.Amount, 10)), nil
}

// whitelist an address, resetting its counter if already present
func (e *Engine) addDepositAddress(trx storage.Transaction, state *State, sender *account.Account, address string) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}
	a, err := e.validAddress(address)
	if nil != err {
		return nil, err
	}

	trx.PutN(e.pools.DepositAddresses, a.Bytes(), 0)

	e.log.Infof("add deposit address: %s", a)

	return newResponse("add_deposit_address").
		attribute("address", a.String()), nil
}

// removing an address that is not present is not an error
func (e *Engine) removeDepositAddress(trx storage.Transaction, state *State, sender *account.Account, address string) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}
	a, err := e.validAddress(address)
	if nil != err {
		return nil, err
	}

	trx.Delete(e.pools.DepositAddresses, a.Bytes())

	e.log.Infof("remove deposit address: %s", a)

	return newResponse("remove_deposit_address").
		attribute("address", a.String()), nil
}

// send every coin held to the owner and zero the total
//
// outstanding allowances are left untouched
func (e *Engine) withdraw(trx storage.Transaction, state *State, sender *account.Account) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}

	balances, err := e.bank.AllBalances(trx)
	if nil != err {
		return nil, err
	}

	previous := state.TotalAmount
	state.TotalAmount = 0
	e.saveState(trx, state)

	e.log.Infof("withdraw: %s  balances: %s  previous total: %d", sender, balances, previous)

	r := newResponse("withdraw")
	if !balances.IsZero() {
		r.transfer(sender, balances)
	}
	return r, nil
}

// add and update are the same overwrite
func (e *Engine) setAllowance(trx storage.Transaction, state *State, sender *account.Account, action string, msg *AllowanceMsg) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}
	spender, err := e.validAddress(msg.Spender)
	if nil != err {
		return nil, err
	}

	trx.PutN(e.pools.Allowances, spender.Bytes(), msg.Amount)

	e.log.Infof("%s: %s  amount: %d", action, spender, msg.Amount)

	return newResponse(action).
		attribute("spender", spender.String()).
		attribute("amount", strconv.FormatUint(msg.Amount, 10)), nil
}

// the first invalid spender aborts the whole list
func (e *Engine) addAllowanceList(trx storage.Transaction, state *State, sender *account.Account, msg *AllowanceListMsg) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}
	if len(msg.Spenders) != len(msg.Amounts) {
		return nil, fault.ErrAllowanceAddressesAmountsNotEqual
	}

	for i, address := range msg.Spenders {
		spender, err := e.validAddress(address)
		if nil != err {
			return nil, err
		}
		trx.PutN(e.pools.Allowances, spender.Bytes(), msg.Amounts[i])
	}

	e.log.Infof("add allowance list: %d entries", len(msg.Spenders))

	return newResponse("add_allowance_list"), nil
}

// removing an absent allowance is not an error
func (e *Engine) removeAllowance(trx storage.Transaction, state *State, sender *account.Account, address string) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}
	spender, err := e.validAddress(address)
	if nil != err {
		return nil, err
	}

	trx.Delete(e.pools.Allowances, spender.Bytes())

	e.log.Infof("remove allowance: %s", spender)

	return newResponse("remove_allowance").
		attribute("spender", spender.String()), nil
}

// pay the sender's allowance and reduce the total, clamped at zero
//
// the allowance entry is kept, so it can be claimed again
func (e *Engine) retrieveAllowance(trx storage.Transaction, state *State, sender *account.Account) (*Response, error) {
	amount, found, err := trx.GetN(e.pools.Allowances, sender.Bytes())
	if nil != err {
		return nil, err
	}
	if !found {
		e.log.Debugf("retrieve allowance: %s  none", sender)
		return nil, fault.WithDetail(fault.ErrNoAllowance, sender.String())
	}

	state.TotalAmount = saturatingSub(state.TotalAmount, amount)
	e.saveState(trx, state)

	e.log.Infof("retrieve allowance: %s  amount: %d  total: %d", sender, amount, state.TotalAmount)

	return newResponse("retrieve_allowance").
		attribute("address", sender.String()).
		attribute("amount", strconv.FormatUint(amount, 10)).
		transfer(sender, coin.Coins{coin.New(amount, state.ExpectedDenom)}), nil
}

func (e *Engine) updateName(trx storage.Transaction, state *State, sender *account.Account, name string) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}

	state.Name = name
	e.saveState(trx, state)

	e.log.Infof("update name: %q", name)

	return newResponse("update_name"), nil
}

func (e *Engine) updateOwner(trx storage.Transaction, state *State, sender *account.Account, owner string) (*Response, error) {
	if err := requireOwner(state, sender); nil != err {
		return nil, err
	}
	newOwner, err := e.validAddress(owner)
	if nil != err {
		return nil, err
	}

	state.Owner = newOwner
	e.saveState(trx, state)

	e.log.Infof("update owner: %s -> %s", sender, newOwner)

	return newResponse("update_owner").
		attribute("owner", newOwner.String()), nil
}
