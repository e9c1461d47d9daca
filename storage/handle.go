// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/vaultd/fault"
)

// Handle - read access to a pool
//
// writes only go through a Transaction
type Handle interface {
	Get([]byte) ([]byte, error)
	GetN([]byte) (uint64, bool, error)
	Has([]byte) (bool, error)
	NewFetchCursor() *FetchCursor
	pending(func([]byte, int, []byte))
	put([]byte, []byte)
	remove([]byte)
}

// PoolHandle - a single prefixed table
type PoolHandle struct {
	prefix     byte
	limit      []byte
	dataAccess Access
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

func (p *PoolHandle) put(key []byte, value []byte) {
	p.dataAccess.Put(p.prefixKey(key), value)
}

func (p *PoolHandle) remove(key []byte) {
	p.dataAccess.Delete(p.prefixKey(key))
}

// pending writes that belong to this pool, prefix stripped
func (p *PoolHandle) pending(f func(key []byte, op int, value []byte)) {
	p.dataAccess.Pending(func(key string, op int, value []byte) {
		if len(key) > 0 && p.prefix == key[0] {
			f([]byte(key[1:]), op, value)
		}
	})
}

// Get - read a value for a given key
//
// returns nil without error if the key is absent
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	value, err := p.dataAccess.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

// GetN - read a record and decode it as big endian uint64
//
// second result is false if record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool, error) {
	buffer, err := p.Get(key)
	if nil != err {
		return 0, false, err
	}
	if nil == buffer {
		return 0, false, nil
	}
	if 8 != len(buffer) {
		return 0, false, fault.WithDetail(fault.ErrTruncatedRecord, fmt.Sprintf("key: %x  length: %d", key, len(buffer)))
	}
	return binary.BigEndian.Uint64(buffer), true, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	return p.dataAccess.Has(p.prefixKey(key))
}

func encodeN(value uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}
