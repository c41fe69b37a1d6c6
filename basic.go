// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

import (
	"fmt"
	"time"

	"code.hybscloud.com/atomix"
)

// figure5Length is the number of ticks the Figure5 thread sleeps.
const figure5Length = 20

// spinWorkers is the number of workers in YieldSpinLoop.
const spinWorkers = 4

// LockOrder spawns a task that stores 1 into a locked cell, then reads
// the cell under the same lock and asserts it still holds 0. The spawned
// task is never joined. Any schedule that runs the writer first fails.
func LockOrder(rt Runtime) error {
	mu := rt.NewMutex()
	cell := 0

	rt.Spawn(func() error {
		mu.Lock()
		cell = 1
		mu.Unlock()
		return nil
	})

	mu.Lock()
	read := cell
	mu.Unlock()
	rt.Logger().V(1).Info("read value", "value", read)
	if read != 0 {
		return fmt.Errorf("%w: read %d, want 0", ErrAssertion, read)
	}
	return nil
}

// Figure5 is Figure 5 of the PCT paper. The spawned task sleeps for
// figure5Length ticks before storing 1; the main task asserts it never
// sees the store.
//
// A uniformly random scheduler must keep choosing the sleeper at every
// tick to fail the assertion, which happens with probability about
// 2^-figure5Length. The bug has depth 1, so PCT finds it about half the
// time.
func Figure5(rt Runtime) error {
	mu := rt.NewMutex()
	cell := 0

	rt.Spawn(func() error {
		for range figure5Length {
			rt.Sleep(time.Millisecond)
		}
		mu.Lock()
		cell = 1
		mu.Unlock()
		return nil
	})

	mu.Lock()
	defer mu.Unlock()
	if cell == 1 {
		return fmt.Errorf("%w: thread 1 ran to completion", ErrAssertion)
	}
	return nil
}

// YieldSpinLoop spawns spinWorkers tasks that each bump a shared counter
// once, and busy-waits until all of them have. With useYield the wait
// loop yields, otherwise it sleeps.
//
// A strategy that keeps scheduling the spinning task starves the workers;
// PCT must deprioritize a yielding task for the yield variant to finish.
func YieldSpinLoop(rt Runtime, useYield bool) error {
	var count atomix.Int64

	for range spinWorkers {
		rt.Spawn(func() error {
			count.Add(1)
			return nil
		})
	}

	for count.Load() < spinWorkers {
		if useYield {
			rt.Yield()
		} else {
			rt.Sleep(time.Millisecond)
		}
	}
	return nil
}

// YieldSpinLoopYield is YieldSpinLoop waiting with Yield.
func YieldSpinLoopYield(rt Runtime) error { return YieldSpinLoop(rt, true) }

// YieldSpinLoopSleep is YieldSpinLoop waiting with Sleep.
func YieldSpinLoopSleep(rt Runtime) error { return YieldSpinLoop(rt, false) }
