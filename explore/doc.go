// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package explore runs a [sut.Body] under a controllable scheduler.
//
// Every task of an execution is a goroutine, but only one runs at a time.
// At each scheduling point (spawn, yield, sleep, lock acquisition,
// condition wait, join, task exit) a [Strategy] picks the next task.
// Re-running a body many times under a strategy explores its
// interleavings:
//
//	report := explore.New(explore.NewRandom(seed)).
//	    Iterations(1000).
//	    Run(sut.MinimalDeadlock)
//	if err := report.Err(); errors.Is(err, explore.ErrDeadlock) {
//	    // the buffer deadlocked under some schedule
//	}
//
// # Strategies
//
//   - [Random]: uniform choice at every scheduling point
//   - [PCT]: Probabilistic Concurrency Testing with a bounded number of
//     priority change points; yielding tasks are deprioritized
//
// The strategy also supplies all randomness of an execution: which
// waiter a Signal wakes and what Runtime.Rand returns. One seed therefore
// replays one exploration.
//
// # Failures
//
// An execution ends when its main task returns. It fails when:
//
//   - some task returns an error (assertion failures, [sut.ErrLockReentry])
//   - some task panics ([ErrPanic])
//   - no task can run while some are blocked ([ErrDeadlock])
//   - it runs past the FailAfter budget ([ErrStepLimit])
//   - the strategy picks a task that cannot run ([ErrStrategy])
//
// Tasks still alive when an execution ends are unwound: blocked calls
// panic with an internal signal that the engine recovers, after which
// deferred releases run as no-ops.
//
// Bodies must not call runtime.Goexit (or testing.T.FailNow) from a task.
//
// # Sweeps
//
// [Sweep] explores a matrix of cases and modes concurrently:
//
//	results, err := (&explore.Sweep{
//	    Cases:       []explore.Case{{Name: "minimal_deadlock", Body: sut.MinimalDeadlock}},
//	    Modes:       []explore.Mode{explore.RandomMode(1), explore.PCTMode(1, 4)},
//	    Iterations:  10000,
//	    Parallelism: 4,
//	}).Run(ctx)
package explore
