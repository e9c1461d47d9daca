// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk vault data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// All writes are collected into a single leveldb.Batch by a
// Transaction and applied with one Write on Commit, so an operation
// either updates every pool it touched or none of them.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. account      = account.Bytes() i.e. key variant ++ 32 byte ed25519 public key
// 4. amount       = big endian uint64 (8 bytes)
// 5. denom        = byte values of the denomination text
//
// Vault:
//
//   S ++ "state"               - the single ledger record
//                                data: packed ledger state (see vault package)
//   W ++ account               - deposit whitelist
//                                data: amount (per depositor counter)
//   A ++ account               - allowances
//                                data: amount
//
// Bank:
//
//   B ++ denom                 - value currently held by the vault
//                                data: amount
//
// Version:
//
//   0x00 ++ "VERSION"          - database layout version (big endian uint32)
package storage
