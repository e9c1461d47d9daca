// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/operation"
	"github.com/bitmark-inc/vaultd/rpc/router"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0o700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	result := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(result)
}

func newKey(t *testing.T, test bool) *account.PrivateKey {
	key, err := account.NewPrivateKey(test)
	require.NoError(t, err, "new key")
	return key
}

func setup(t *testing.T) (*storage.Database, *operation.Operation, *account.PrivateKey) {
	db, err := storage.OpenMemory()
	require.NoError(t, err, "open memory database")

	r := router.New(logger.New("rpc"), db, true, nil)
	o := operation.New(logger.New("rpc"), r, true)

	owner := newKey(t, true)
	arguments := operation.InstantiateArguments{
		Message: &vault.InstantiateMsg{Name: "test", ExpectedDenom: "uatom"},
	}
	require.NoError(t, arguments.Sign(owner, time.Now()), "sign")

	var reply vault.Response
	require.NoError(t, o.Instantiate(&arguments, &reply), "instantiate")
	action, _ := reply.Attribute("action")
	assert.Equal(t, "instantiate", action, "action")

	return db, o, owner
}

func TestExecuteSigned(t *testing.T) {
	db, o, owner := setup(t)
	defer db.Close()

	arguments := operation.ExecuteArguments{
		Funds:   coin.Coins{coin.New(12, "uatom")},
		Message: &vault.Message{Deposit: &vault.DepositMsg{}},
	}
	require.NoError(t, arguments.Sign(owner, time.Now()), "sign")

	var reply vault.Response
	err := o.Execute(&arguments, &reply)
	require.NoError(t, err, "execute")
	amount, _ := reply.Attribute("amount")
	assert.Equal(t, "12", amount, "amount")

	// the same signed request cannot be applied twice
	err = o.Execute(&arguments, &reply)
	assert.Equal(t, fault.ErrDuplicateRequest, err, "replay")
}

func TestExecuteTampered(t *testing.T) {
	db, o, owner := setup(t)
	defer db.Close()

	arguments := operation.ExecuteArguments{
		Funds:   coin.Coins{coin.New(1, "uatom")},
		Message: &vault.Message{Deposit: &vault.DepositMsg{}},
	}
	require.NoError(t, arguments.Sign(owner, time.Now()), "sign")

	arguments.Funds = coin.Coins{coin.New(1000, "uatom")}

	var reply vault.Response
	err := o.Execute(&arguments, &reply)
	assert.Equal(t, fault.ErrInvalidSignature, err, "tampered funds")

	// signed by someone else in the owner's name
	other := newKey(t, true)
	arguments = operation.ExecuteArguments{
		Message: &vault.Message{Withdraw: &vault.WithdrawMsg{}},
	}
	require.NoError(t, arguments.Sign(other, time.Now()), "sign")
	arguments.Sender = owner.Account()

	err = o.Execute(&arguments, &reply)
	assert.Equal(t, fault.ErrInvalidSignature, err, "impersonation")
}

func TestExecuteStale(t *testing.T) {
	db, o, owner := setup(t)
	defer db.Close()

	for _, when := range []time.Time{time.Now().Add(-10 * time.Minute), time.Now().Add(10 * time.Minute)} {
		arguments := operation.ExecuteArguments{
			Message: &vault.Message{UpdateName: &vault.UpdateNameMsg{Name: "stale"}},
		}
		require.NoError(t, arguments.Sign(owner, when), "sign")

		var reply vault.Response
		err := o.Execute(&arguments, &reply)
		assert.Equal(t, fault.ErrInvalidTimestamp, err, "timestamp: %s", when)
	}
}

func TestExecuteWrongNetwork(t *testing.T) {
	db, o, _ := setup(t)
	defer db.Close()

	arguments := operation.ExecuteArguments{
		Message: &vault.Message{RetrieveAllowance: &vault.RetrieveMsg{}},
	}
	require.NoError(t, arguments.Sign(newKey(t, false), time.Now()), "sign")

	var reply vault.Response
	err := o.Execute(&arguments, &reply)
	assert.True(t, errors.Is(err, fault.ErrNotValidAddress), "error: %v", err)
}

func TestExecuteMissingParameters(t *testing.T) {
	db, o, owner := setup(t)
	defer db.Close()

	var reply vault.Response

	err := o.Execute(&operation.ExecuteArguments{}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "no message")

	arguments := operation.ExecuteArguments{
		Message: &vault.Message{Withdraw: &vault.WithdrawMsg{}},
	}
	arguments.Sender = owner.Account()
	arguments.Timestamp = time.Now().Unix()
	err = o.Execute(&arguments, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "no signature")
}

func TestInstantiateTwice(t *testing.T) {
	db, o, _ := setup(t)
	defer db.Close()

	arguments := operation.InstantiateArguments{
		Message: &vault.InstantiateMsg{Name: "again", ExpectedDenom: "ubtc"},
	}
	require.NoError(t, arguments.Sign(newKey(t, true), time.Now()), "sign")

	var reply vault.Response
	err := o.Instantiate(&arguments, &reply)
	assert.Equal(t, fault.ErrAlreadyInstantiated, err, "second instantiate")
}
