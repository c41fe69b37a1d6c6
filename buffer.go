// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

import "sync"

// BoundedBuffer is a fixed-capacity ring buffer guarded by a monitor.
//
// This is Tom Cargill's bounded buffer: one mutex and ONE condition
// variable shared by blocked writers (buffer full) and blocked readers
// (buffer empty). Every successful Put or Take signals a single waiter.
//
// The buffer contains a known deadlock. Because both predicates share a
// condition and only one waiter is woken, a signal meant for a writer can
// land on a reader whose predicate is still false. That reader goes back
// to sleep without signalling anyone, and the writer that could have made
// progress sleeps forever. Capacity accounting is always correct; only
// wake targeting is wrong. The defect is the point of the type: do not
// split the condition or switch to Broadcast.
//
// Memory: O(capacity)
type BoundedBuffer[T any] struct {
	mu   sync.Locker
	cond Cond // shared by full and empty waiters

	buffer   []T
	putAt    int
	takeAt   int
	occupied int
}

// testHookOccupancy, when set, observes occupied after every put and take
// while b.mu is still held.
var testHookOccupancy func(occupied, capacity int)

// NewBoundedBuffer creates a buffer with the given capacity whose monitor
// lives on rt. Panics if capacity < 1.
func NewBoundedBuffer[T any](rt Runtime, capacity int) *BoundedBuffer[T] {
	if capacity < 1 {
		panic("sut: capacity must be >= 1")
	}
	mu := rt.NewMutex()
	return &BoundedBuffer[T]{
		mu:     mu,
		cond:   rt.NewCond(mu),
		buffer: make([]T, capacity),
	}
}

// Put appends x, waiting while the buffer is full.
func (b *BoundedBuffer[T]) Put(x T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.occupied == len(b.buffer) {
		b.cond.Wait()
	}
	b.put(x)
}

// Take removes and returns the oldest element, waiting while the buffer
// is empty.
func (b *BoundedBuffer[T]) Take() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.occupied == 0 {
		b.cond.Wait()
	}
	return b.take()
}

// TryPut appends x without waiting.
// Returns ErrWouldBlock if the buffer is full.
func (b *BoundedBuffer[T]) TryPut(x T) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.occupied == len(b.buffer) {
		return ErrWouldBlock
	}
	b.put(x)
	return nil
}

// TryTake removes and returns the oldest element without waiting.
// Returns (zero-value, ErrWouldBlock) if the buffer is empty.
func (b *BoundedBuffer[T]) TryTake() (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.occupied == 0 {
		var zero T
		return zero, ErrWouldBlock
	}
	return b.take(), nil
}

// Cap returns the buffer capacity.
func (b *BoundedBuffer[T]) Cap() int {
	return len(b.buffer)
}

// Len returns the number of occupied slots.
func (b *BoundedBuffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.occupied
}

// put requires b.mu held and a free slot.
func (b *BoundedBuffer[T]) put(x T) {
	b.occupied++
	b.buffer[b.putAt] = x
	b.putAt = (b.putAt + 1) % len(b.buffer)
	if testHookOccupancy != nil {
		testHookOccupancy(b.occupied, len(b.buffer))
	}
	b.cond.Signal()
}

// take requires b.mu held and an occupied slot.
func (b *BoundedBuffer[T]) take() T {
	b.occupied--
	x := b.buffer[b.takeAt]
	b.takeAt = (b.takeAt + 1) % len(b.buffer)
	if testHookOccupancy != nil {
		testHookOccupancy(b.occupied, len(b.buffer))
	}
	b.cond.Signal()
	return x
}
