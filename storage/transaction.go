// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"
)

// Transaction - all-or-nothing set of writes across pools
//
// reads through a transaction see its own pending writes
type Transaction interface {
	Put(Handle, []byte, []byte)
	PutN(Handle, []byte, uint64)
	Delete(Handle, []byte)
	Get(Handle, []byte) ([]byte, error)
	GetN(Handle, []byte) (uint64, bool, error)
	Has(Handle, []byte) (bool, error)
	Map(Handle, func([]byte, []byte) error) error
	Commit() error
	Abort()
	InUse() bool
}

// TransactionData - the single transaction of a Database
type TransactionData struct {
	access Access
}

func newTransaction(access Access) *TransactionData {
	return &TransactionData{
		access: access,
	}
}

// Begin - fails if a transaction is already in progress
func (t *TransactionData) Begin() error {
	return t.access.Begin()
}

// Put - store a key/value pair
func (t *TransactionData) Put(h Handle, key []byte, value []byte) {
	h.put(key, value)
}

// PutN - store a big endian uint64
func (t *TransactionData) PutN(h Handle, key []byte, value uint64) {
	h.put(key, encodeN(value))
}

// Delete - remove a key
func (t *TransactionData) Delete(h Handle, key []byte) {
	h.remove(key)
}

// Get - read a value, nil if absent
func (t *TransactionData) Get(h Handle, key []byte) ([]byte, error) {
	return h.Get(key)
}

// GetN - read a big endian uint64
func (t *TransactionData) GetN(h Handle, key []byte) (uint64, bool, error) {
	return h.GetN(key)
}

// Has - check if a key exists
func (t *TransactionData) Has(h Handle, key []byte) (bool, error) {
	return h.Has(key)
}

// Map - run a function on every element of a pool in ascending key
// order, as the pool would be after Commit
func (t *TransactionData) Map(h Handle, f func(key []byte, value []byte) error) error {
	merged := make(map[string][]byte)
	err := h.NewFetchCursor().Map(func(key []byte, value []byte) error {
		merged[string(key)] = value
		return nil
	})
	if nil != err {
		return err
	}

	h.pending(func(key []byte, op int, value []byte) {
		if dbDelete == op {
			delete(merged, string(key))
		} else {
			merged[string(key)] = value
		}
	})

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := f([]byte(k), merged[k]); nil != err {
			return err
		}
	}
	return nil
}

// Commit - write everything
func (t *TransactionData) Commit() error {
	return t.access.Commit()
}

// Abort - discard everything
func (t *TransactionData) Abort() {
	t.access.Abort()
}

// InUse - true while the transaction is open
func (t *TransactionData) InUse() bool {
	return t.access.InUse()
}
