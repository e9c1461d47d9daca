// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PermissionError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAllowanceAddressesAmountsNotEqual = InvalidError("allowance addresses and amounts are not equal")
	ErrAllowanceNotFound                 = NotFoundError("allowance not found")
	ErrAlreadyInitialised                = ExistsError("already initialised")
	ErrAlreadyInstantiated               = ExistsError("vault is already instantiated")
	ErrCannotDecodeAccount               = InvalidError("cannot decode account")
	ErrCannotDecodePrivateKey            = InvalidError("cannot decode private key")
	ErrCertificateFileAlreadyExists      = ExistsError("certificate file already exists")
	ErrChecksumMismatch                  = ProcessError("checksum mismatch")
	ErrDuplicateRequest                  = ExistsError("duplicate request")
	ErrInsufficientFunds                 = ProcessError("vault does not have enough funds")
	ErrInvalidAmount                     = InvalidError("invalid amount")
	ErrInvalidConfiguration              = InvalidError("configuration must return a table")
	ErrInvalidChain                      = InvalidError("invalid chain")
	ErrInvalidCount                      = InvalidError("invalid count")
	ErrInvalidCursor                     = InvalidError("invalid cursor")
	ErrInvalidDenom                      = InvalidError("invalid coin denom: the given coin type is not supported")
	ErrInvalidIPAddress                  = InvalidError("invalid IP address")
	ErrInvalidKeyLength                  = InvalidError("invalid key length")
	ErrInvalidKeyType                    = InvalidError("invalid key type")
	ErrInvalidMessage                    = InvalidError("message must contain exactly one operation")
	ErrInvalidPoolPrefix                 = InvalidError("invalid pool prefix")
	ErrInvalidSignature                  = InvalidError("invalid signature")
	ErrInvalidTimestamp                  = InvalidError("request timestamp is outside the permitted window")
	ErrKeyFileAlreadyExists              = ExistsError("key file already exists")
	ErrMissingParameters                 = InvalidError("missing parameters")
	ErrNoAllowance                       = NotFoundError("this address has no allowance")
	ErrNotInitialised                    = NotFoundError("not initialised")
	ErrNotInstantiated                   = NotFoundError("vault is not instantiated")
	ErrNotOwner                          = PermissionError("unauthorised: only the owner can call this function")
	ErrNotPrivateKey                     = InvalidError("not a private key")
	ErrNotPublicKey                      = InvalidError("not a public key")
	ErrNotValidAddress                   = InvalidError("not a valid address")
	ErrRateLimiting                      = ProcessError("rate limiting")
	ErrTransactionAlreadyInUse           = ProcessError("transaction already in use")
	ErrTransactionNotInUse               = ProcessError("transaction not in use")
	ErrTruncatedRecord                   = ProcessError("truncated record")
	ErrUnauthorizedDepositAddress        = PermissionError("this address cannot deposit")
	ErrWrongNetworkForPublicKey          = InvalidError("wrong network for public key")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool    { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool   { var x NotFoundError; return errors.As(e, &x) }
func IsErrPermission(e error) bool { var x PermissionError; return errors.As(e, &x) }
func IsErrProcess(e error) bool    { var x ProcessError; return errors.As(e, &x) }

// DetailedError - an error instance with the offending value attached
type DetailedError struct {
	Err    error
	Detail string
}

// WithDetail - attach a diagnostic value to an error instance
func WithDetail(err error, detail string) error {
	if nil == err {
		return nil
	}
	return &DetailedError{
		Err:    err,
		Detail: detail,
	}
}

func (e *DetailedError) Error() string {
	return e.Err.Error() + ": " + e.Detail
}

// Unwrap - to allow errors.Is and errors.As to see the instance
func (e *DetailedError) Unwrap() error {
	return e.Err
}

// Detail - extract the attached value if any
func Detail(err error) string {
	var d *DetailedError
	if errors.As(err, &d) {
		return d.Detail
	}
	return ""
}
