// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/json"
	"strconv"

	"github.com/bitmark-inc/vaultd/fault"
)

// Amounts - a list of amounts, carried in JSON as decimal strings
// like every other amount
type Amounts []uint64

// MarshalJSON - convert to a list of strings
func (amounts Amounts) MarshalJSON() ([]byte, error) {
	if nil == amounts {
		return []byte("null"), nil
	}
	s := make([]string, len(amounts))
	for i, a := range amounts {
		s[i] = strconv.FormatUint(a, 10)
	}
	return json.Marshal(s)
}

// UnmarshalJSON - convert from a list of strings
func (amounts *Amounts) UnmarshalJSON(b []byte) error {
	var s []string
	if err := json.Unmarshal(b, &s); nil != err {
		return err
	}
	if nil == s {
		*amounts = nil
		return nil
	}

	result := make(Amounts, len(s))
	for i, v := range s {
		a, err := strconv.ParseUint(v, 10, 64)
		if nil != err {
			return fault.WithDetail(fault.ErrInvalidAmount, v)
		}
		result[i] = a
	}
	*amounts = result
	return nil
}
