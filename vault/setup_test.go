// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
	"github.com/bitmark-inc/vaultd/vault/mocks"
)

const (
	testingDirName = "testing"
	testDenom      = "atom"
)

// Test main entrypoint
func TestMain(m *testing.M) {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	removeFiles()
	os.Exit(result)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// a vault with an owner, a whitelisted depositor and an unrelated account
type fixture struct {
	t         *testing.T
	ctl       *gomock.Controller
	db        *storage.Database
	bank      *mocks.MockBalanceQuerier
	engine    *vault.Engine
	owner     *account.Account
	depositor *account.Account
	stranger  *account.Account
}

func newAccount(t *testing.T) *account.Account {
	key, err := account.NewPrivateKey(true)
	require.NoError(t, err, "new private key")
	return key.Account()
}

func newFixture(t *testing.T) *fixture {
	ctl := gomock.NewController(t)

	db, err := storage.OpenMemory()
	require.NoError(t, err, "open memory database")

	bank := mocks.NewMockBalanceQuerier(ctl)

	f := &fixture{
		t:         t,
		ctl:       ctl,
		db:        db,
		bank:      bank,
		engine:    vault.New(logger.New("vault"), &db.Pools, bank, true),
		owner:     newAccount(t),
		depositor: newAccount(t),
		stranger:  newAccount(t),
	}

	trx, err := db.NewTransaction()
	require.NoError(t, err, "begin")
	_, err = f.engine.Instantiate(trx, f.owner, &vault.InstantiateMsg{
		Name:          "Vault X",
		ExpectedDenom: testDenom,
	})
	require.NoError(t, err, "instantiate")
	require.NoError(t, trx.Commit(), "commit")

	_, err = f.execute(f.owner, nil, &vault.Message{
		AddDepositAddress: &vault.AddressMsg{Address: f.depositor.String()},
	})
	require.NoError(t, err, "add depositor")

	return f
}

func (f *fixture) finish() {
	f.db.Close()
	f.ctl.Finish()
}

// run one operation, committing only on success
func (f *fixture) execute(sender *account.Account, funds coin.Coins, msg *vault.Message) (*vault.Response, error) {
	trx, err := f.db.NewTransaction()
	require.NoError(f.t, err, "begin")

	r, err := f.engine.Execute(trx, sender, funds, msg)
	if nil != err {
		trx.Abort()
		return nil, err
	}
	require.NoError(f.t, trx.Commit(), "commit")
	return r, nil
}

func (f *fixture) deposit(sender *account.Account, funds ...coin.Coin) (*vault.Response, error) {
	return f.execute(sender, funds, &vault.Message{Deposit: &vault.DepositMsg{}})
}

func (f *fixture) total() uint64 {
	state, err := f.engine.State()
	require.NoError(f.t, err, "state")
	return state.TotalAmount
}

// a snapshot of everything the queries can see
type snapshot struct {
	state      *vault.State
	allowances *vault.AllowancesResponse
	addresses  *vault.DepositAddressesResponse
}

func (f *fixture) snapshot() snapshot {
	state, err := f.engine.State()
	require.NoError(f.t, err, "state")
	allowances, err := f.engine.Allowances()
	require.NoError(f.t, err, "allowances")
	addresses, err := f.engine.DepositAddresses()
	require.NoError(f.t, err, "deposit addresses")
	return snapshot{
		state:      state,
		allowances: allowances,
		addresses:  addresses,
	}
}
