// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault - custodial fund vault
//
// The vault holds value of a single denomination.  Only whitelisted
// accounts may deposit, only the owner may administer and sweep the
// vault, and spenders holding an allowance may claim it themselves.
//
// Operations run inside a storage.Transaction supplied by the caller
// and return a Response carrying event attributes and any transfers
// the host must make.  The engine never locks: callers must run one
// operation at a time and commit the transaction only on success.
package vault
