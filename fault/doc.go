// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.  Values that
// help diagnose a failure (an owner, an address, a denomination) are
// attached with WithDetail which keeps the instance comparable with
// errors.Is and keeps the class predicates working.
package fault
