// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - identities that may own, fund or draw from a vault
//
// An account is an ed25519 public key encoded as:
//
//   base58( varint(key variant) ++ public key ++ SHA3-256(variant ++ key)[:4] )
//
// the key variant carries the algorithm in bits 4..7, bit 0 set for a
// public key and bit 1 set for a test network key.  An identity string
// is valid exactly when it decodes to such a structure with a matching
// checksum.
package account
