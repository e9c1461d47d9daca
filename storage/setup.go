// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/vaultd/fault"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	State            *PoolHandle `prefix:"S"`
	DepositAddresses *PoolHandle `prefix:"W"`
	Allowances       *PoolHandle `prefix:"A"`
	Balances         *PoolHandle `prefix:"B"`
}

// Database - an open vault database and its pools
type Database struct {
	Pools

	db  *leveldb.DB
	trx *TransactionData
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Open - open up the database file
func Open(database string, readOnly bool) (*Database, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - a database that only lives as long as the process
func OpenMemory() (*Database, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Database, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, err
		}
	} else if version != currentDBVersion {
		return nil, fmt.Errorf("database is inconsistent: version: %d  current: %d", version, currentDBVersion)
	}

	access := newDA(db, new(leveldb.Batch), newCache())
	d := &Database{
		db:  db,
		trx: newTransaction(access),
	}

	if err := d.Pools.create(access); nil != err {
		return nil, err
	}

	ok = true // prevent db close
	return d, nil
}

// create a handle for each pool field from its prefix tag
func (pools *Pools) create(access Access) error {

	// this will be a struct type
	poolType := reflect.TypeOf(*pools)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(pools).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fault.WithDetail(fault.ErrInvalidPoolPrefix, fmt.Sprintf("%s: %q", fieldInfo.Name, prefixTag))
		}

		prefix := prefixTag[0]
		if 0 == prefix {
			return fault.WithDetail(fault.ErrInvalidPoolPrefix, fieldInfo.Name)
		}
		if other, ok := seen[prefix]; ok {
			return fault.WithDetail(fault.ErrInvalidPoolPrefix, fmt.Sprintf("%s duplicates %s", fieldInfo.Name, other))
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// Close - close the database connection
//
// any transaction still in progress is discarded
func (d *Database) Close() {
	if nil == d.db {
		return
	}
	d.trx.Abort()
	d.db.Close()
	d.db = nil
}

// NewTransaction - begin a transaction over all pools
//
// only one transaction may be in progress at a time
func (d *Database) NewTransaction() (Transaction, error) {
	if err := d.trx.Begin(); nil != err {
		return nil, err
	}
	return d.trx, nil
}

// return the version number or zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
