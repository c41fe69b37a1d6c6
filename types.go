// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// Body is a program under test.
//
// A Body has three observable outcomes: it returns nil (completion), it
// returns an error (an assertion failure or a lock protocol violation),
// or it never returns (a deadlock, which only the runtime can detect).
type Body func(rt Runtime) error

// Runtime supplies every concurrency primitive a Body may use.
//
// Bodies must not use goroutines, channels or the sync package directly:
// an exploration engine can only control the interleavings it sees. All
// spawning, blocking and suspension goes through the Runtime.
//
// Two implementations exist:
//   - [Native]: goroutines and the sync package, scheduled by the Go runtime
//   - explore: a controllable engine that runs one task at a time and lets a
//     strategy pick every interleaving
//
// Example:
//
//	func body(rt sut.Runtime) error {
//	    mu := rt.NewMutex()
//	    h := rt.Spawn(func() error {
//	        mu.Lock()
//	        defer mu.Unlock()
//	        return nil
//	    })
//	    return h.Join()
//	}
type Runtime interface {
	// Spawn starts fn as a new task and returns a handle to join it.
	Spawn(fn func() error) Handle

	// Yield is a cooperative suspension point. The calling task may resume
	// at any later time; no ordering is implied.
	Yield()

	// Sleep is a simulated delay. Under an exploration engine it is a
	// scheduling point without timer semantics.
	Sleep(d time.Duration)

	// NewMutex returns an exclusive lock.
	NewMutex() sync.Locker

	// NewCond returns a condition variable bound to l.
	// l must have been created by the same Runtime.
	NewCond(l sync.Locker) Cond

	// NewRWMutex returns a non-reentrant read/write lock.
	NewRWMutex() RWMutex

	// Rand returns the random source a Body must draw from. Under an
	// exploration engine the values are part of the explored schedule.
	Rand() *rand.Rand

	// Logger returns the logger for the current run.
	Logger() logr.Logger
}

// Handle is a joinable task.
type Handle interface {
	// Join blocks until the task returns and reports its error.
	Join() error
}

// Cond is a condition variable associated with a Runtime mutex.
//
// Wait atomically releases the mutex and suspends the caller; when woken
// it reacquires the mutex before returning. As with [sync.Cond], callers
// must re-check their predicate in a loop.
type Cond interface {
	Wait()

	// Signal wakes at most one waiter. Which waiter is unspecified.
	Signal()

	Broadcast()
}

// RWMutex is a read/write lock with explicit guards.
//
// Acquisition returns a Guard whose Unlock is the only release point, so
// the lifetime of a hold is visible in the code that takes it.
//
// The lock is not reentrant: acquiring it (in either mode) while the
// calling task still holds a guard is a protocol violation. Runtimes that
// can attribute holds to tasks report it as an error wrapping
// [ErrLockReentry]; others block, as [sync.RWMutex] does.
type RWMutex interface {
	RLock() (Guard, error)
	Lock() (Guard, error)
}

// Guard is a held RWMutex acquisition.
type Guard interface {
	// Unlock releases the acquisition. Calling it twice panics.
	Unlock()
}
