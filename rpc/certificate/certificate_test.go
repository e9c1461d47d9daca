// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/vaultd/rpc/certificate"
)

const (
	testingDirName = "testing"
)

func setupTestLogger() {
	_ = os.RemoveAll(testingDirName)
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
}

func teardownTestLogger() {
	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
}

func TestGet(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	cer, key, err := certgen.NewTLSCertPair("vaultd test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
	require.NoError(t, err, "generate certificate")

	tlsConfig, fingerprint, err := certificate.Get(logger.New("test"), "test", string(cer), string(key))
	require.NoError(t, err, "get")

	pair, _ := tls.X509KeyPair(cer, key)

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")

	_, _, err = certificate.Get(logger.New("test"), "test", string(cer), "not a key")
	assert.Error(t, err, "mismatched key")
}

func TestLoad(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	cer, key, err := certgen.NewTLSCertPair("vaultd test", time.Now().Add(time.Hour), false, nil)
	require.NoError(t, err, "generate certificate")

	certificateFile := filepath.Join(testingDirName, "rpc.crt")
	keyFile := filepath.Join(testingDirName, "rpc.key")
	require.NoError(t, ioutil.WriteFile(certificateFile, cer, 0o600), "write certificate")
	require.NoError(t, ioutil.WriteFile(keyFile, key, 0o600), "write key")

	_, fingerprint, err := certificate.Load(logger.New("test"), "test", certificateFile, keyFile)
	require.NoError(t, err, "load")

	pair, _ := tls.X509KeyPair(cer, key)
	assert.Equal(t, certificate.Fingerprint(pair.Certificate[0]), fingerprint, "fingerprint")

	_, _, err = certificate.Load(logger.New("test"), "test", filepath.Join(testingDirName, "missing.crt"), keyFile)
	assert.Error(t, err, "missing file")
}
