// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PullService - serves /metrics for a prometheus scraper
type PullService struct {
	log    *logger.L
	server *http.Server
}

// NewPullService - create the service, nothing listens until Start
func NewPullService(log *logger.L, listen string, gatherer prometheus.Gatherer) *PullService {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &PullService{
		log: log,
		server: &http.Server{
			Addr:           listen,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
	}
}

// Start - listen in the background
func (s *PullService) Start() {
	s.log.Infof("metrics listening on: %s", s.server.Addr)
	go func() {
		err := s.server.ListenAndServe()
		if nil != err && http.ErrServerClosed != err {
			s.log.Errorf("metrics listen: %s  error: %s", s.server.Addr, err)
		}
	}()
}

// Stop - close the listener
func (s *PullService) Stop() error {
	return s.server.Close()
}
