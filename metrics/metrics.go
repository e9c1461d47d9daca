// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - prometheus instrumentation of vault operations
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// labels to use for partitioning requests
	requestLabels = []string{"operation", "status"}

	// labels to use for partitioning request latencies
	requestLatencyLabels = []string{"operation"}
)

// status label values
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusFailed   = "failed"
)

// Metrics - counters for operations and the vault's held value
type Metrics struct {
	// counts of operations, partitioned by operation and status
	RequestCounts *prometheus.CounterVec

	// latencies of serving operations
	RequestLatencies *prometheus.HistogramVec

	// total_amount of the ledger after the last committed operation
	TotalAmount prometheus.Gauge

	// value paid out of the vault, partitioned by denomination
	Transferred *prometheus.CounterVec
}

// New - create and register all collectors
//
// each registerer may only be used once
func New(pkg string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RequestCounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_requests", pkg),
				Help: "How many operations were requested, partitioned by operation and status.",
			},
			requestLabels,
		),
		RequestLatencies: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: fmt.Sprintf("%s_request_latencies", pkg),
				Help: "How long operations take to process, partitioned by operation.",
			},
			requestLatencyLabels,
		),
		TotalAmount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: fmt.Sprintf("%s_total_amount", pkg),
				Help: "Ledger total of the expected denomination.",
			},
		),
		Transferred: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_transferred", pkg),
				Help: "Value paid out of the vault, partitioned by denomination.",
			},
			[]string{"denom"},
		),
	}

	for _, c := range []prometheus.Collector{m.RequestCounts, m.RequestLatencies, m.TotalAmount, m.Transferred} {
		if err := registerer.Register(c); nil != err {
			return nil, err
		}
	}
	return m, nil
}

// RequestCounter - the counter for an operation and its outcome
func (m *Metrics) RequestCounter(operation string, status string) prometheus.Counter {
	return m.RequestCounts.WithLabelValues(operation, status)
}

// RequestTimer - a latency timer for an operation
func (m *Metrics) RequestTimer(operation string) *prometheus.Timer {
	return prometheus.NewTimer(m.RequestLatencies.WithLabelValues(operation))
}
