// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/vaultd/fault"
)

// PrivateKey - ed25519 signing key on a particular network
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// NewPrivateKey - generate a fresh random key
func NewPrivateKey(test bool) (*PrivateKey, error) {
	return newPrivateKey(test, rand.Reader)
}

func newPrivateKey(test bool, random io.Reader) (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(random)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: priv,
	}, nil
}

// PrivateKeyFromBase58 - decode a private key string
//
// same layout as an account, but the public key bit is clear and the
// key is the full 64 byte ed25519 private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	decoded, err := base58.Decode(privateKeyBase58Encoded)
	if nil != err || 0 == len(decoded) {
		return nil, fault.ErrCannotDecodePrivateKey
	}

	keyVariant, keyVariantLength := binary.Uvarint(decoded)
	if keyVariantLength <= 0 || keyVariant&publicKeyCode == publicKeyCode {
		return nil, fault.ErrNotPrivateKey
	}
	if ED25519 != keyVariant>>algorithmShift {
		return nil, fault.ErrInvalidKeyType
	}

	checksumStart := len(decoded) - checksumLength
	if checksumStart <= keyVariantLength {
		return nil, fault.ErrInvalidKeyLength
	}
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	if ed25519.PrivateKeySize != checksumStart-keyVariantLength {
		return nil, fault.ErrInvalidKeyLength
	}

	priv := make([]byte, ed25519.PrivateKeySize)
	copy(priv, decoded[keyVariantLength:checksumStart])

	return &PrivateKey{
		Test:       0 != keyVariant&testKeyCode,
		PrivateKey: priv,
	}, nil
}

// Account - the public half
func (privateKey *PrivateKey) Account() *Account {
	// ed25519 private key is seed ++ public key
	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, privateKey.PrivateKey[ed25519.PrivateKeySize-ed25519.PublicKeySize:])
	return &Account{
		Test:      privateKey.Test,
		PublicKey: publicKey,
	}
}

// Bytes - key variant ++ private key
func (privateKey *PrivateKey) Bytes() []byte {
	keyVariant := byte(ED25519 << algorithmShift)
	if privateKey.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, privateKey.PrivateKey...)
}

// String - base58 encoding with checksum
func (privateKey *PrivateKey) String() string {
	buffer := privateKey.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// Sign - ed25519 signature of message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.PrivateKey, message)
}

// IsTesting - whether the key belongs to a test network
func (privateKey *PrivateKey) IsTesting() bool {
	return privateKey.Test
}
