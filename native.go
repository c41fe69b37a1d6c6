// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/go-logr/logr"
)

// Native is a Runtime backed by goroutines and the sync package.
//
// Interleavings are whatever the Go scheduler produces, so a Body that
// deadlocks under Native simply hangs. Native cannot attribute RWMutex
// holds to goroutines: a reentrant acquisition is not reported and blocks
// as soon as a writer is queued.
//
// Native is safe for concurrent use by the tasks it spawns.
type Native struct {
	seed   uint64
	stream atomix.Uint64
	logger logr.Logger
}

var _ Runtime = (*Native)(nil)

// NewNative creates a native runtime. Rand streams are derived from seed.
// A zero-value logger discards output.
func NewNative(seed uint64, logger logr.Logger) *Native {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	return &Native{seed: seed, logger: logger}
}

// Spawn runs fn on a new goroutine. A panic in fn is returned by Join.
func (n *Native) Spawn(fn func() error) Handle {
	h := &nativeHandle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				h.err = fmt.Errorf("sut: task panicked: %v", r)
			}
		}()
		h.err = fn()
	}()
	return h
}

// Yield calls runtime.Gosched.
func (n *Native) Yield() { runtime.Gosched() }

// Sleep calls time.Sleep.
func (n *Native) Sleep(d time.Duration) { time.Sleep(d) }

// NewMutex returns a *sync.Mutex.
func (n *Native) NewMutex() sync.Locker { return new(sync.Mutex) }

// NewCond returns a *sync.Cond. Signal wakes the longest waiting goroutine.
func (n *Native) NewCond(l sync.Locker) Cond { return sync.NewCond(l) }

// NewRWMutex returns a guard-based wrapper around sync.RWMutex.
func (n *Native) NewRWMutex() RWMutex { return new(nativeRWMutex) }

// Rand returns a fresh generator on its own stream. Each call yields an
// independent sequence, so concurrent tasks never share a generator.
func (n *Native) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(n.seed, n.stream.AddAcqRel(1)))
}

// Logger returns the runtime's logger.
func (n *Native) Logger() logr.Logger { return n.logger }

type nativeHandle struct {
	done chan struct{}
	err  error
}

func (h *nativeHandle) Join() error {
	<-h.done
	return h.err
}

type nativeRWMutex struct {
	mu sync.RWMutex
}

func (m *nativeRWMutex) RLock() (Guard, error) {
	m.mu.RLock()
	return &nativeGuard{unlock: m.mu.RUnlock}, nil
}

func (m *nativeRWMutex) Lock() (Guard, error) {
	m.mu.Lock()
	return &nativeGuard{unlock: m.mu.Unlock}, nil
}

type nativeGuard struct {
	unlock   func()
	released bool
}

func (g *nativeGuard) Unlock() {
	if g.released {
		panic("sut: guard released twice")
	}
	g.released = true
	g.unlock()
}
