// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/vaultd/metrics"
)

func TestRequestCounter(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := metrics.New("vault", registry)
	require.NoError(t, err, "new")

	m.RequestCounter("deposit", metrics.StatusOK).Inc()
	m.RequestCounter("deposit", metrics.StatusOK).Inc()
	m.RequestCounter("deposit", metrics.StatusRejected).Inc()
	m.TotalAmount.Set(42)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestCounter("deposit", metrics.StatusOK)), "ok")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestCounter("deposit", metrics.StatusRejected)), "rejected")
	assert.Equal(t, float64(42), testutil.ToFloat64(m.TotalAmount), "total")

	m.RequestTimer("deposit").ObserveDuration()

	families, err := registry.Gather()
	require.NoError(t, err, "gather")
	names := []string{}
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "vault_requests", "requests")
	assert.Contains(t, names, "vault_request_latencies", "latencies")
	assert.Contains(t, names, "vault_total_amount", "total")
}

func TestRegisterTwice(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := metrics.New("vault", registry)
	require.NoError(t, err, "first")

	_, err = metrics.New("vault", registry)
	assert.Error(t, err, "second")
}
