// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"errors"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/chain"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/counter"
	"github.com/bitmark-inc/vaultd/fault"
	"github.com/bitmark-inc/vaultd/rpc/certificate"
	"github.com/bitmark-inc/vaultd/rpc/listeners"
	"github.com/bitmark-inc/vaultd/rpc/operation"
	"github.com/bitmark-inc/vaultd/rpc/query"
	"github.com/bitmark-inc/vaultd/rpc/router"
	"github.com/bitmark-inc/vaultd/rpc/server"
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

	rc := m.Run()

	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func serverTLS(t *testing.T) *tls.Config {
	cer, key, err := certgen.NewTLSCertPair("vaultd test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
	require.NoError(t, err, "generate certificate")

	tlsConfig, _, err := certificate.Get(logger.New("test"), "test", string(cer), string(key))
	require.NoError(t, err, "get certificate")
	return tlsConfig
}

func dial(t *testing.T, l listeners.Listener) *rpc.Client {
	addresses := l.Addresses()
	require.Equal(t, 1, len(addresses), "wrong address count")

	c, err := tls.Dial("tcp", addresses[0].String(), &tls.Config{InsecureSkipVerify: true})
	require.NoError(t, err, "dial")
	return jsonrpc.NewClient(c)
}

func TestRpcListenerServe(t *testing.T) {
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	require.NoError(t, s.Register(Add{}), "register")

	l, err := listeners.NewRPC(&con, logger.New("test"), &count, s, serverTLS(t))
	require.NoError(t, err, "wrong NewRPC")

	err = l.Serve()
	require.NoError(t, err, "wrong Serve")
	defer l.Close()

	client := dial(t, l)
	defer client.Close()

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")
}

func TestRpcListenerVault(t *testing.T) {
	db, err := storage.OpenMemory()
	require.NoError(t, err, "open memory database")
	defer db.Close()

	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}

	count := counter.Counter(0)
	r := router.New(logger.New("test"), db, true, nil)
	s := server.Create(logger.New("test"), "1.0", chain.Local, &count, r)

	l, err := listeners.NewRPC(&con, logger.New("test"), &count, s, serverTLS(t))
	require.NoError(t, err, "wrong NewRPC")
	require.NoError(t, l.Serve(), "wrong Serve")
	defer l.Close()

	client := dial(t, l)
	defer client.Close()

	owner, err := account.NewPrivateKey(true)
	require.NoError(t, err, "new key")

	instantiate := operation.InstantiateArguments{
		Message: &vault.InstantiateMsg{Name: "remote", ExpectedDenom: "uatom"},
	}
	require.NoError(t, instantiate.Sign(owner, time.Now()), "sign")

	var response vault.Response
	err = client.Call(operation.InstantiateMethod, &instantiate, &response)
	require.NoError(t, err, "instantiate")

	deposit := operation.ExecuteArguments{
		Funds:   coin.Coins{coin.New(25, "uatom")},
		Message: &vault.Message{Deposit: &vault.DepositMsg{}},
	}
	require.NoError(t, deposit.Sign(owner, time.Now()), "sign")

	err = client.Call(operation.ExecuteMethod, &deposit, &response)
	require.NoError(t, err, "deposit")

	// a second delivery of the same request is refused
	err = client.Call(operation.ExecuteMethod, &deposit, &response)
	assert.Equal(t, fault.ErrDuplicateRequest.Error(), err.Error(), "replay")

	withdraw := operation.ExecuteArguments{
		Message: &vault.Message{Withdraw: &vault.WithdrawMsg{}},
	}
	require.NoError(t, withdraw.Sign(owner, time.Now()), "sign")

	response = vault.Response{}
	err = client.Call(operation.ExecuteMethod, &withdraw, &response)
	require.NoError(t, err, "withdraw")
	require.Equal(t, 1, len(response.Transfers), "wrong transfer count")
	assert.True(t, owner.Account().Equal(response.Transfers[0].Recipient), "wrong recipient")
	assert.Equal(t, coin.Coins{coin.New(25, "uatom")}, response.Transfers[0].Amount, "wrong amount")

	var state vault.State
	err = client.Call("Query.State", &query.Arguments{}, &state)
	require.NoError(t, err, "state")
	assert.Equal(t, "remote", state.Name, "wrong name")
	assert.Equal(t, uint64(0), state.TotalAmount, "wrong total")
}

func TestRpcListenerWhenMaxConnectionCountTooSmall(t *testing.T) {
	con := listeners.RPCConfiguration{
		MaximumConnections: 0,
		Listen:             []string{"127.0.0.1:0"},
	}

	count := counter.Counter(0)

	_, err := listeners.NewRPC(&con, logger.New("test"), &count, rpc.NewServer(), &tls.Config{})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerWhenEmptyListen(t *testing.T) {
	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{},
	}

	count := counter.Counter(0)

	_, err := listeners.NewRPC(&con, logger.New("test"), &count, rpc.NewServer(), &tls.Config{})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerWhenInvalidListen(t *testing.T) {
	for _, listen := range []string{"1", "localhost:1234", "1.2.3:1234"} {
		con := listeners.RPCConfiguration{
			MaximumConnections: 1,
			Listen:             []string{listen},
		}

		count := counter.Counter(0)

		_, err := listeners.NewRPC(&con, logger.New("test"), &count, rpc.NewServer(), &tls.Config{})
		assert.True(t, errors.Is(err, fault.ErrInvalidIPAddress), "listen: %q  error: %v", listen, err)
	}
}
