// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"code.hybscloud.com/sut"
	"github.com/go-logr/logr"
)

type taskState uint8

const (
	taskRunnable taskState = iota
	taskBlocked
	taskFinished
)

// task is one goroutine of an execution. A task only runs after
// receiving on wake, and hands control to exactly one other task before
// waiting on wake again.
type task struct {
	id       TaskID
	state    taskState
	yielding bool
	wake     chan struct{}
	exited   chan struct{}
	err      error
	joiners  []*task
}

// abortSignal unwinds a task whose execution is over.
type abortSignal struct{}

type outcome uint8

const (
	outcomeCompleted outcome = iota
	outcomeStepLimit
	outcomeFailed
)

// execution runs one Body under a Strategy. It implements sut.Runtime.
//
// Exactly one task goroutine runs at a time; control moves between them
// by channel handoff, which also orders every access to the fields
// below. The goroutine that called run only waits on ended and then
// tears the remaining tasks down one at a time.
type execution struct {
	strategy Strategy
	opts     *Options
	logger   logr.Logger
	rng      *rand.Rand

	tasks    []*task
	current  *task
	steps    int
	runnable []TaskID

	ended   chan struct{}
	over    bool
	outcome outcome
	err     error
	aborted bool
}

var _ sut.Runtime = (*execution)(nil)

func newExecution(index int, s Strategy, opts *Options) *execution {
	return &execution{
		strategy: s,
		opts:     opts,
		logger:   opts.logger.WithValues("execution", index),
		rng:      rand.New(s),
		ended:    make(chan struct{}, 1),
	}
}

// run executes body as task 0 and returns once every task goroutine has
// exited.
func (e *execution) run(body sut.Body) {
	main := e.newTask(func() error { return body(e) })
	e.current = main
	main.wake <- struct{}{}
	<-e.ended
	e.teardown()
}

func (e *execution) newTask(fn func() error) *task {
	t := &task{
		id:     TaskID(len(e.tasks)),
		wake:   make(chan struct{}, 1),
		exited: make(chan struct{}),
	}
	e.tasks = append(e.tasks, t)
	go e.start(t, fn)
	return t
}

func (e *execution) start(t *task, fn func() error) {
	defer close(t.exited)
	<-t.wake
	if e.aborted {
		return
	}
	aborted, err := e.invoke(t, fn)
	if aborted {
		return
	}
	e.exit(t, err)
}

// invoke runs fn, converting panics into errors. Once the execution is
// aborted every panic counts as unwinding, including ones raised by
// deferred calls on the way out.
func (e *execution) invoke(t *task, fn func() error) (aborted bool, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(abortSignal); ok || e.aborted {
			aborted = true
			return
		}
		err = fmt.Errorf("%w: task %d: %v", ErrPanic, t.id, r)
	}()
	return false, fn()
}

func (e *execution) exit(t *task, err error) {
	t.state = taskFinished
	t.err = err
	e.wakeAll(&t.joiners)

	switch {
	case err != nil:
		e.end(outcomeFailed, fmt.Errorf("task %d: %w", t.id, err))
	case t.id == 0:
		e.end(outcomeCompleted, nil)
	default:
		if next, ok := e.pick(); ok {
			e.current = next
			next.wake <- struct{}{}
		}
	}
}

// schedule is a scheduling point for the current task. It returns when
// the strategy picks the current task again; if the execution ends first
// it unwinds the task.
func (e *execution) schedule() {
	if e.aborted {
		panic(abortSignal{})
	}
	cur := e.current
	next, ok := e.pick()
	if ok && next == cur {
		return
	}
	if ok {
		e.current = next
		next.wake <- struct{}{}
	}
	<-cur.wake
	if e.aborted {
		panic(abortSignal{})
	}
}

// pick consults the strategy. It reports false after ending the
// execution when the step budget is spent, nothing can run, or the
// strategy picks a task that cannot run.
func (e *execution) pick() (*task, bool) {
	e.steps++
	if e.steps > e.opts.maxSteps {
		if e.opts.failOnMaxSteps {
			e.end(outcomeFailed, fmt.Errorf("%w: %d steps", ErrStepLimit, e.opts.maxSteps))
		} else {
			e.logger.Info("we have run out of schedule steps", "steps", e.opts.maxSteps)
			e.end(outcomeStepLimit, nil)
		}
		return nil, false
	}

	e.runnable = e.runnable[:0]
	for _, t := range e.tasks {
		if t.state == taskRunnable {
			e.runnable = append(e.runnable, t.id)
		}
	}
	if len(e.runnable) == 0 {
		e.end(outcomeFailed, e.deadlock())
		return nil, false
	}

	cur := e.current
	current := cur.id
	if cur.state == taskFinished {
		current = NoTask
	}
	id := e.strategy.NextTask(e.runnable, current, cur.yielding)
	cur.yielding = false
	if id < 0 || int(id) >= len(e.tasks) || e.tasks[id].state != taskRunnable {
		e.end(outcomeFailed, fmt.Errorf("%w: picked task %d, runnable %v", ErrStrategy, id, e.runnable))
		return nil, false
	}
	return e.tasks[id], true
}

func (e *execution) end(o outcome, err error) {
	if e.over {
		return
	}
	e.over = true
	e.outcome, e.err = o, err
	e.ended <- struct{}{}
}

// teardown unwinds every task that has not exited, one at a time, so the
// deferred calls they run never overlap.
func (e *execution) teardown() {
	e.aborted = true
	for _, t := range e.tasks {
		select {
		case <-t.exited:
			continue
		default:
		}
		e.current = t
		t.wake <- struct{}{}
		<-t.exited
	}
}

func (e *execution) deadlock() error {
	var blocked []string
	for _, t := range e.tasks {
		if t.state == taskBlocked {
			blocked = append(blocked, fmt.Sprintf("task %d", t.id))
		}
	}
	return fmt.Errorf("%w: blocked %s", ErrDeadlock, strings.Join(blocked, ", "))
}

// block parks the current task on q until a wakeAll or a targeted wake
// makes it runnable and the strategy picks it.
func (e *execution) block(q *[]*task) {
	cur := e.current
	*q = append(*q, cur)
	cur.state = taskBlocked
	e.schedule()
}

func (e *execution) wakeAll(q *[]*task) {
	for _, t := range *q {
		t.state = taskRunnable
	}
	*q = (*q)[:0]
}

// Spawn starts fn as a new task. Spawning is a scheduling point.
func (e *execution) Spawn(fn func() error) sut.Handle {
	if e.aborted {
		panic(abortSignal{})
	}
	t := e.newTask(fn)
	e.schedule()
	return &handle{e: e, t: t}
}

// Yield is a scheduling point that tells the strategy the task yielded.
func (e *execution) Yield() {
	if e.aborted {
		panic(abortSignal{})
	}
	e.current.yielding = true
	e.schedule()
}

// Sleep is a plain scheduling point; d is ignored.
func (e *execution) Sleep(time.Duration) {
	e.schedule()
}

func (e *execution) NewMutex() sync.Locker {
	return &mutex{e: e}
}

// NewCond panics if l was not created by this execution.
func (e *execution) NewCond(l sync.Locker) sut.Cond {
	m, ok := l.(*mutex)
	if !ok || m.e != e {
		panic("explore: NewCond requires a mutex from the same execution")
	}
	return &cond{m: m}
}

func (e *execution) NewRWMutex() sut.RWMutex {
	return &rwmutex{e: e}
}

// Rand draws from the strategy, so sampled values replay with the seed.
func (e *execution) Rand() *rand.Rand { return e.rng }

func (e *execution) Logger() logr.Logger { return e.logger }

type handle struct {
	e *execution
	t *task
}

// Join is a scheduling point; it blocks until the task finishes.
func (h *handle) Join() error {
	h.e.schedule()
	for h.t.state != taskFinished {
		h.e.block(&h.t.joiners)
	}
	return h.t.err
}
