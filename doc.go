// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sut provides concurrent programs under test for a controllable
// scheduler.
//
// Every program here is deliberately buggy or borderline buggy. Their job
// is to expose schedule-dependent defects when re-executed under different
// exploration strategies, so the bugs are preserved, not fixed:
//
//   - [BoundedBuffer]: a monitor with one condition shared by two
//     predicates (Cargill's bounded buffer deadlock)
//   - [FindDeadlockConfiguration]: random search over buffer size, reader
//     count, writer count and iterations
//   - [MinimalDeadlock]: capacity 1, two readers, one writer
//   - [AsyncMatchDeadlock]: a read guard held across a suspension point
//     and a second read acquisition of the same lock
//   - [LockOrder], [Figure5], [YieldSpinLoop]: one-shot schedule-sensitive
//     checks
//
// # Runtimes
//
// Programs are written against [Runtime], never against goroutines or the
// sync package directly:
//
//	func body(rt sut.Runtime) error {
//	    b := sut.NewBoundedBuffer[int](rt, 1)
//	    h := rt.Spawn(func() error {
//	        b.Put(42)
//	        return nil
//	    })
//	    _ = b.Take()
//	    return h.Join()
//	}
//
// [Native] runs a Body on real goroutines:
//
//	rt := sut.NewNative(1, logr.Discard())
//	err := sut.MinimalDeadlock(rt) // may hang: that is the bug
//
// The explore package runs a Body many times under a chosen strategy and
// reports deadlocks, assertion failures and lock protocol violations:
//
//	report := explore.New(explore.NewRandom(seed)).Iterations(1000).Run(sut.MinimalDeadlock)
//	if report.Deadlocks() > 0 {
//	    // found it
//	}
//
// # Outcomes
//
// A Body either returns nil, returns an error, or never returns. Errors
// wrap [ErrAssertion] for invariant violations and [ErrLockReentry] for
// reentrant RWMutex acquisition. Non-termination is the runtime's to
// detect.
//
// # Non-blocking Buffer Operations
//
// [BoundedBuffer.TryPut] and [BoundedBuffer.TryTake] return [ErrWouldBlock]
// instead of waiting:
//
//	backoff := iox.Backoff{}
//	for b.TryPut(v) != nil {
//	    backoff.Wait()
//	}
//	backoff.Reset()
package sut
