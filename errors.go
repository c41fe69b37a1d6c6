// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a non-blocking buffer operation cannot proceed.
//
// For TryPut: the buffer is full
// For TryTake: the buffer is empty
//
// ErrWouldBlock is a control flow signal, not a failure.
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrAssertion is wrapped by every invariant violation a Body reports.
var ErrAssertion = errors.New("sut: assertion failed")

// ErrLockReentry is wrapped by RWMutex acquisition errors when the calling
// task already holds the lock.
var ErrLockReentry = errors.New("sut: tried to acquire a RWMutex it already holds")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsAssertion reports whether err is, or wraps, an assertion failure.
func IsAssertion(err error) bool {
	return errors.Is(err, ErrAssertion)
}
