// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/background"
	"github.com/bitmark-inc/vaultd/coin"
	"github.com/bitmark-inc/vaultd/metrics"
	"github.com/bitmark-inc/vaultd/rpc/router"
	"github.com/bitmark-inc/vaultd/storage"
	"github.com/bitmark-inc/vaultd/vault"
)

const watcherConfiguration = `
local M = {}
M.data_directory = "."
M.chain = "local"
M.logging = {
    levels = { DEFAULT = "%s" },
}
return M
`

func TestConfigWatcher(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join(testingDirName, "watcher"))
	require.NoError(t, err, "abs")

	fileName := writeConfiguration(t, dir, sprintfLevel("critical"))

	reloaded := make(chan *Configuration, 10)
	w, err := newConfigWatcher(logger.New("test"), fileName, func(c *Configuration) {
		reloaded <- c
	})
	require.NoError(t, err, "new watcher")

	processes := background.Start(background.Processes{w}, nil)
	defer processes.Stop()

	// allow the watcher goroutine to start
	time.Sleep(100 * time.Millisecond)

	// an unrelated file in the same directory is ignored
	err = ioutil.WriteFile(filepath.Join(dir, "other.conf"), []byte("return {}"), 0o600)
	require.NoError(t, err, "write other")

	err = ioutil.WriteFile(fileName, []byte(sprintfLevel("debug")), 0o600)
	require.NoError(t, err, "rewrite configuration")

	select {
	case c := <-reloaded:
		assert.Equal(t, "debug", c.Logging.Levels[logger.DefaultTag], "reloaded level")
	case <-time.After(5 * time.Second):
		t.Fatal("configuration was not reloaded")
	}
}

func TestConfigWatcherMissingDirectory(t *testing.T) {
	_, err := newConfigWatcher(logger.New("test"), filepath.Join(testingDirName, "none", "vaultd.conf"), func(*Configuration) {})
	assert.Error(t, err, "missing directory")
}

func TestReporter(t *testing.T) {
	db, err := storage.OpenMemory()
	require.NoError(t, err, "open memory database")
	defer db.Close()

	m, err := metrics.New("test", prometheus.NewRegistry())
	require.NoError(t, err, "metrics")

	r := router.New(logger.New("test"), db, true, nil)
	rep := &reporter{
		log:      logger.New("test"),
		router:   r,
		metrics:  m,
		interval: time.Hour,
	}

	// nothing to report before instantiation
	rep.report()
	assert.Equal(t, float64(0), testutil.ToFloat64(m.TotalAmount), "empty")

	key, err := account.NewPrivateKey(true)
	require.NoError(t, err, "new key")
	owner := key.Account()

	_, err = r.Instantiate(owner, nil, &vault.InstantiateMsg{Name: "report", ExpectedDenom: "uatom"})
	require.NoError(t, err, "instantiate")
	_, err = r.Execute(owner, coin.Coins{coin.New(21, "uatom")}, &vault.Message{Deposit: &vault.DepositMsg{}})
	require.NoError(t, err, "deposit")

	// Run reports once on start then waits for shutdown
	processes := background.Start(background.Processes{rep}, nil)
	processes.Stop()

	assert.Equal(t, float64(21), testutil.ToFloat64(m.TotalAmount), "total")
}

func sprintfLevel(level string) string {
	return fmt.Sprintf(watcherConfiguration, level)
}
