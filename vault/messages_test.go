// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/vault"
)

// every amount is a decimal string so large values survive
// clients whose numbers are doubles
func TestAmountsAreStrings(t *testing.T) {
	msg := vault.Message{
		AddAllowance: &vault.AllowanceMsg{Spender: "s", Amount: math.MaxUint64},
	}
	buffer, err := json.Marshal(msg)
	require.NoError(t, err, "marshal allowance")
	assert.Equal(t, `{"add_allowance":{"spender":"s","amount":"18446744073709551615"}}`, string(buffer))

	list := vault.Message{
		AddAllowanceList: &vault.AllowanceListMsg{Spenders: []string{"a", "b"}, Amounts: vault.Amounts{1, math.MaxUint64}},
	}
	buffer, err = json.Marshal(list)
	require.NoError(t, err, "marshal list")
	assert.Equal(t, `{"add_allowance_list":{"spenders":["a","b"],"amounts":["1","18446744073709551615"]}}`, string(buffer))

	var decoded vault.Message
	require.NoError(t, json.Unmarshal(buffer, &decoded), "unmarshal list")
	assert.Equal(t, vault.Amounts{1, math.MaxUint64}, decoded.AddAllowanceList.Amounts, "amounts")

	state := vault.State{Name: "v", TotalAmount: 9007199254740993, ExpectedDenom: "atom"}
	buffer, err = json.Marshal(state)
	require.NoError(t, err, "marshal state")
	assert.Contains(t, string(buffer), `"total_amount":"9007199254740993"`, "total")

	allowances := vault.AllowancesResponse{Spenders: []string{}, Amounts: vault.Amounts{}}
	buffer, err = json.Marshal(allowances)
	require.NoError(t, err, "marshal empty")
	assert.Equal(t, `{"spenders":[],"amounts":[]}`, string(buffer))

	allowance := vault.AllowanceResponse{Spender: "s", Amount: 7}
	buffer, err = json.Marshal(allowance)
	require.NoError(t, err, "marshal allowance response")
	assert.Equal(t, `{"spender":"s","amount":"7"}`, string(buffer))
}

func TestAmountsRejected(t *testing.T) {
	items := []string{
		`{"spenders":["a"],"amounts":[1]}`,
		`{"spenders":["a"],"amounts":["-1"]}`,
		`{"spenders":["a"],"amounts":["18446744073709551616"]}`,
		`{"spenders":["a"],"amounts":["ten"]}`,
	}
	for i, text := range items {
		var msg vault.AllowanceListMsg
		assert.Error(t, json.Unmarshal([]byte(text), &msg), "%d: %s", i, text)
	}

	var msg vault.AllowanceListMsg
	err := json.Unmarshal([]byte(`{"spenders":["a"],"amounts":["x1"]}`), &msg)
	assert.True(t, errors.Is(err, fault.ErrInvalidAmount), "actual: %v", err)

	var single vault.AllowanceMsg
	assert.Error(t, json.Unmarshal([]byte(`{"spender":"a","amount":5}`), &single), "number amount")
	require.NoError(t, json.Unmarshal([]byte(`{"spender":"a","amount":"5"}`), &single), "string amount")
	assert.Equal(t, uint64(5), single.Amount, "amount")
}

func TestInstantiateMsgValidate(t *testing.T) {
	assert.NoError(t, (&vault.InstantiateMsg{Name: "v", ExpectedDenom: "uatom"}).Validate(), "valid")
	assert.NoError(t, (&vault.InstantiateMsg{ExpectedDenom: "ibc/27394FB092D2"}).Validate(), "ibc denom")

	err := (&vault.InstantiateMsg{Name: "v", ExpectedDenom: "ab"}).Validate()
	assert.True(t, errors.Is(err, fault.ErrInvalidDenom), "short: %v", err)

	var nilMsg *vault.InstantiateMsg
	assert.Equal(t, fault.ErrInvalidMessage, nilMsg.Validate(), "nil")
}
