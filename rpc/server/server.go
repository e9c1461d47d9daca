// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - register the RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/vaultd/chain"
	"github.com/bitmark-inc/vaultd/counter"
	"github.com/bitmark-inc/vaultd/rpc/node"
	"github.com/bitmark-inc/vaultd/rpc/operation"
	"github.com/bitmark-inc/vaultd/rpc/query"
	"github.com/bitmark-inc/vaultd/rpc/router"
)

// Create - an RPC server with Operation, Query and Node services
func Create(log *logger.L, version string, chainName string, rpcCount *counter.Counter, r *router.Router) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(operation.New(log, r, chain.IsTesting(chainName)))
	_ = server.Register(query.New(log, r))
	_ = server.Register(node.New(log, start, version, chainName, rpcCount))

	return server
}
