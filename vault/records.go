// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"

	"github.com/bitmark-inc/vaultd/account"
	"github.com/bitmark-inc/vaultd/fault"
)

// State - the single ledger record of a vault
type State struct {
	Owner         *account.Account `json:"owner"`
	Name          string           `json:"name"`
	TotalAmount   uint64           `json:"total_amount,string"`
	ExpectedDenom string           `json:"expected_denom"`
}

// key of the ledger record in the state pool
var stateKey = []byte("state")

// pack the ledger record
//
//   owner  = length ++ account.Bytes()
//   name   = length ++ UTF-8 text
//   total  = 8 byte big endian
//   denom  = length ++ text
//
// lengths are unsigned varints
func (s *State) pack() []byte {
	ownerBytes := s.Owner.Bytes()

	buffer := make([]byte, 0, 3*binary.MaxVarintLen64+len(ownerBytes)+len(s.Name)+8+len(s.ExpectedDenom))
	buffer = appendBytes(buffer, ownerBytes)
	buffer = appendBytes(buffer, []byte(s.Name))

	total := make([]byte, 8)
	binary.BigEndian.PutUint64(total, s.TotalAmount)
	buffer = append(buffer, total...)

	return appendBytes(buffer, []byte(s.ExpectedDenom))
}

// unpack the ledger record
func unpackState(buffer []byte) (*State, error) {
	ownerBytes, n, err := nextBytes(buffer, 0)
	if nil != err {
		return nil, err
	}
	owner, err := account.AccountFromBytes(ownerBytes)
	if nil != err {
		return nil, err
	}

	name, n, err := nextBytes(buffer, n)
	if nil != err {
		return nil, err
	}

	if n+8 > len(buffer) {
		return nil, fault.ErrTruncatedRecord
	}
	total := binary.BigEndian.Uint64(buffer[n : n+8])
	n += 8

	denom, n, err := nextBytes(buffer, n)
	if nil != err {
		return nil, err
	}
	if n != len(buffer) {
		return nil, fault.ErrTruncatedRecord
	}

	return &State{
		Owner:         owner,
		Name:          string(name),
		TotalAmount:   total,
		ExpectedDenom: string(denom),
	}, nil
}

func appendBytes(buffer []byte, data []byte) []byte {
	length := make([]byte, binary.MaxVarintLen64)
	k := binary.PutUvarint(length, uint64(len(data)))
	buffer = append(buffer, length[:k]...)
	return append(buffer, data...)
}

// read a length prefixed item at offset n, return it and the next offset
func nextBytes(buffer []byte, n int) ([]byte, int, error) {
	if n >= len(buffer) {
		return nil, 0, fault.ErrTruncatedRecord
	}
	length, k := binary.Uvarint(buffer[n:])
	if k <= 0 {
		return nil, 0, fault.ErrTruncatedRecord
	}
	n += k
	if length > uint64(len(buffer)-n) {
		return nil, 0, fault.ErrTruncatedRecord
	}
	end := n + int(length)
	return buffer[n:end], end, nil
}
