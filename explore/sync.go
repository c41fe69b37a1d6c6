// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import (
	"fmt"
	"slices"

	"code.hybscloud.com/sut"
)

// Release operations (Unlock, Signal, Broadcast, Guard.Unlock) are not
// scheduling points, and become no-ops once the execution is aborted so
// that deferred releases can run while tasks unwind.

// mutex is an exclusive lock. Like sync.Mutex it is not tied to the task
// that locked it.
type mutex struct {
	e       *execution
	holder  *task
	waiters []*task
}

// Lock is a scheduling point. Locking a mutex the task already holds
// blocks forever, which the engine reports as a deadlock.
func (m *mutex) Lock() {
	m.e.schedule()
	for m.holder != nil {
		m.e.block(&m.waiters)
	}
	m.holder = m.e.current
}

func (m *mutex) Unlock() {
	if m.e.aborted {
		return
	}
	if m.holder == nil {
		panic("explore: unlock of unlocked mutex")
	}
	m.holder = nil
	m.e.wakeAll(&m.waiters)
}

// cond is a condition variable. Signal wakes one waiter chosen with the
// strategy's randomness, so every choice is explorable.
type cond struct {
	m       *mutex
	waiters []*task
}

func (c *cond) Wait() {
	e := c.m.e
	if e.aborted {
		panic(abortSignal{})
	}
	cur := e.current
	c.waiters = append(c.waiters, cur)
	cur.state = taskBlocked
	c.m.Unlock()
	e.schedule()
	c.m.Lock()
}

func (c *cond) Signal() {
	if c.m.e.aborted || len(c.waiters) == 0 {
		return
	}
	i := c.m.e.rng.IntN(len(c.waiters))
	t := c.waiters[i]
	c.waiters = slices.Delete(c.waiters, i, i+1)
	t.state = taskRunnable
}

func (c *cond) Broadcast() {
	if c.m.e.aborted {
		return
	}
	c.m.e.wakeAll(&c.waiters)
}

// rwmutex is a read/write lock that knows which tasks hold it, so a
// reentrant acquisition is reported instead of silently deadlocking.
type rwmutex struct {
	e       *execution
	writer  *task
	readers []*task
	waiters []*task
}

// RLock is a scheduling point.
func (rw *rwmutex) RLock() (sut.Guard, error) {
	rw.e.schedule()
	if err := rw.checkReentry(); err != nil {
		return nil, err
	}
	for rw.writer != nil {
		rw.e.block(&rw.waiters)
	}
	cur := rw.e.current
	rw.readers = append(rw.readers, cur)
	return &guard{rw: rw, owner: cur}, nil
}

// Lock is a scheduling point.
func (rw *rwmutex) Lock() (sut.Guard, error) {
	rw.e.schedule()
	if err := rw.checkReentry(); err != nil {
		return nil, err
	}
	for rw.writer != nil || len(rw.readers) > 0 {
		rw.e.block(&rw.waiters)
	}
	cur := rw.e.current
	rw.writer = cur
	return &guard{rw: rw, owner: cur, write: true}, nil
}

func (rw *rwmutex) checkReentry() error {
	cur := rw.e.current
	if rw.writer == cur || slices.Contains(rw.readers, cur) {
		return fmt.Errorf("%w: task %d", sut.ErrLockReentry, cur.id)
	}
	return nil
}

type guard struct {
	rw       *rwmutex
	owner    *task
	write    bool
	released bool
}

func (g *guard) Unlock() {
	rw := g.rw
	if rw.e.aborted {
		return
	}
	if g.released {
		panic("explore: guard released twice")
	}
	g.released = true
	if g.write {
		rw.writer = nil
	} else {
		i := slices.Index(rw.readers, g.owner)
		rw.readers = slices.Delete(rw.readers, i, i+1)
	}
	rw.e.wakeAll(&rw.waiters)
}
