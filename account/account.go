// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/binary"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/vaultd/fault"
)

// supported key algorithms
const (
	ED25519 = 1
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Account - an ed25519 public key on a particular network
type Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - decode and validate an account string
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(accountDecoded) {
		return nil, fault.ErrCannotDecodeAccount
	}

	isTest, keyVariantLength, err := parseVariant(accountDecoded)
	if nil != err {
		return nil, err
	}

	keyLength := len(accountDecoded) - keyVariantLength - checksumLength
	if keyLength <= 0 {
		return nil, fault.ErrInvalidKeyLength
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	if ed25519.PublicKeySize != keyLength {
		return nil, fault.ErrInvalidKeyLength
	}

	publicKey := make([]byte, keyLength)
	copy(publicKey, accountDecoded[keyVariantLength:checksumStart])

	return &Account{
		Test:      isTest,
		PublicKey: publicKey,
	}, nil
}

// AccountFromBytes - decode the storage form of an account (no checksum)
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	isTest, keyVariantLength, err := parseVariant(accountBytes)
	if nil != err {
		return nil, err
	}

	if ed25519.PublicKeySize != len(accountBytes)-keyVariantLength {
		return nil, fault.ErrInvalidKeyLength
	}

	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, accountBytes[keyVariantLength:])

	return &Account{
		Test:      isTest,
		PublicKey: publicKey,
	}, nil
}

// check the leading key variant of a public key encoding
func parseVariant(buffer []byte) (bool, int, error) {
	keyVariant, keyVariantLength := binary.Uvarint(buffer)
	if keyVariantLength <= 0 || keyVariant&publicKeyCode != publicKeyCode {
		return false, 0, fault.ErrNotPublicKey
	}

	if ED25519 != keyVariant>>algorithmShift {
		return false, 0, fault.ErrInvalidKeyType
	}

	return 0 != keyVariant&testKeyCode, keyVariantLength, nil
}

// Bytes - key variant ++ public key, the form used as a storage key
func (account *Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey...)
}

// String - base58 encoding with checksum
func (account *Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// IsTesting - whether the key belongs to a test network
func (account *Account) IsTesting() bool {
	return account.Test
}

// Equal - same network and same public key
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other {
		return account == other
	}
	return account.Test == other.Test && bytes.Equal(account.PublicKey, other.PublicKey)
}

// CheckSignature - verify an ed25519 signature made by this account
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.PublicKey, message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// MarshalText - convert an account to its base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}
