// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

// SetOccupancyHook installs fn to observe every buffer put and take and
// returns a function that restores the previous hook.
// Not safe to call while a buffer is in use.
func SetOccupancyHook(fn func(occupied, capacity int)) (restore func()) {
	prev := testHookOccupancy
	testHookOccupancy = fn
	return func() { testHookOccupancy = prev }
}
