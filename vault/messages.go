// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
)

// InstantiateMsg - create the vault, the sender becomes its owner
type InstantiateMsg struct {
	Name          string `json:"name"`
	ExpectedDenom string `json:"expected_denom"`
}

// Validate - the expected denomination must be one the bank accepts
func (m *InstantiateMsg) Validate() error {
	if nil == m {
		return fault.ErrInvalidMessage
	}
	if !coin.ValidDenom(m.ExpectedDenom) {
		return fault.WithDetail(fault.ErrInvalidDenom, m.ExpectedDenom)
	}
	return nil
}

// Message - one execute operation
//
// exactly one field must be set, giving JSON of the form:
//   {"add_allowance":{"spender":"…","amount":"5"}}
type Message struct {
	Deposit              *DepositMsg       `json:"deposit,omitempty"`
	AddDepositAddress    *AddressMsg       `json:"add_deposit_address,omitempty"`
	RemoveDepositAddress *AddressMsg       `json:"remove_deposit_address,omitempty"`
	Withdraw             *WithdrawMsg      `json:"withdraw,omitempty"`
	AddAllowance         *AllowanceMsg     `json:"add_allowance,omitempty"`
	AddAllowanceList     *AllowanceListMsg `json:"add_allowance_list,omitempty"`
	RemoveAllowance      *SpenderMsg       `json:"remove_allowance,omitempty"`
	UpdateAllowance      *AllowanceMsg     `json:"update_allowance,omitempty"`
	RetrieveAllowance    *RetrieveMsg      `json:"retrieve_allowance,omitempty"`
	UpdateName           *UpdateNameMsg    `json:"update_name,omitempty"`
	UpdateOwner          *UpdateOwnerMsg   `json:"update_owner,omitempty"`
}

// DepositMsg - the attached funds are the deposit
type DepositMsg struct{}

// WithdrawMsg - sweep everything to the owner
type WithdrawMsg struct{}

// RetrieveMsg - claim the sender's allowance
type RetrieveMsg struct{}

// AddressMsg - a deposit whitelist entry
type AddressMsg struct {
	Address string `json:"address"`
}

// SpenderMsg - an allowance ledger entry
type SpenderMsg struct {
	Spender string `json:"spender"`
}

// AllowanceMsg - set a spender's allowance
type AllowanceMsg struct {
	Spender string `json:"spender"`
	Amount  uint64 `json:"amount,string"`
}

// AllowanceListMsg - set several allowances, lists must be the same length
type AllowanceListMsg struct {
	Spenders []string `json:"spenders"`
	Amounts  Amounts  `json:"amounts"`
}

// UpdateNameMsg - rename the vault
type UpdateNameMsg struct {
	Name string `json:"name"`
}

// UpdateOwnerMsg - hand the vault to a new owner
type UpdateOwnerMsg struct {
	Owner string `json:"owner"`
}

// Action - the event name for the operation, empty if not exactly one is set
func (m *Message) Action() string {
	action := ""
	n := 0
	set := func(present bool, name string) {
		if present {
			action = name
			n += 1
		}
	}

	set(nil != m.Deposit, "deposit")
	set(nil != m.AddDepositAddress, "add_deposit_address")
	set(nil != m.RemoveDepositAddress, "remove_deposit_address")
	set(nil != m.Withdraw, "withdraw")
	set(nil != m.AddAllowance, "add_allowance")
	set(nil != m.AddAllowanceList, "add_allowance_list")
	set(nil != m.RemoveAllowance, "remove_allowance")
	set(nil != m.UpdateAllowance, "update_allowance")
	set(nil != m.RetrieveAllowance, "retrieve_allowance")
	set(nil != m.UpdateName, "update_name")
	set(nil != m.UpdateOwner, "update_owner")

	if 1 != n {
		return ""
	}
	return action
}

// Validate - check that exactly one operation is present
func (m *Message) Validate() error {
	if nil == m || "" == m.Action() {
		return fault.ErrInvalidMessage
	}
	return nil
}
