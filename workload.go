// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Sampling bounds for [SampleConfig]. Each field is drawn uniformly from
// [1, max].
const (
	MaxBufferSize = 5
	MaxReaders    = 5
	MaxWriters    = 5
	MaxIterations = 10
)

// Config describes one bounded-buffer workload.
//
// Iterations is the number of items each reader takes. Writers share the
// same total between them, the last writer absorbing the remainder, so
// production always equals consumption regardless of interleaving.
type Config struct {
	BufferSize int
	Readers    int
	Writers    int
	Iterations int
}

// MinimalConfig is the smallest known deadlocking workload:
// capacity 1, two readers taking 5 items each, one writer putting 10.
var MinimalConfig = Config{BufferSize: 1, Readers: 2, Writers: 1, Iterations: 5}

// SampleConfig draws a configuration uniformly within the sampling bounds.
// Fields are drawn in declaration order.
func SampleConfig(r *rand.Rand) Config {
	return Config{
		BufferSize: r.IntN(MaxBufferSize) + 1,
		Readers:    r.IntN(MaxReaders) + 1,
		Writers:    r.IntN(MaxWriters) + 1,
		Iterations: r.IntN(MaxIterations) + 1,
	}
}

// Validate reports whether every field is positive.
func (c Config) Validate() error {
	var errs []error
	if c.BufferSize < 1 {
		errs = append(errs, fmt.Errorf("buffer size %d < 1", c.BufferSize))
	}
	if c.Readers < 1 {
		errs = append(errs, fmt.Errorf("readers %d < 1", c.Readers))
	}
	if c.Writers < 1 {
		errs = append(errs, fmt.Errorf("writers %d < 1", c.Writers))
	}
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations %d < 1", c.Iterations))
	}
	if len(errs) > 0 {
		return fmt.Errorf("sut: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TotalItems returns the number of items consumed by all readers.
func (c Config) TotalItems() int {
	return c.Iterations * c.Readers
}

// WriterShares returns the number of puts each writer performs.
//
// Every writer gets TotalItems / Writers; the last one also takes
// TotalItems % Writers.
func (c Config) WriterShares() []int {
	total := c.TotalItems()
	shares := make([]int, c.Writers)
	for i := range shares {
		shares[i] = total / c.Writers
	}
	shares[len(shares)-1] += total % c.Writers
	return shares
}

// RunWorkload spawns cfg.Readers readers and cfg.Writers writers over a
// fresh buffer on rt, then joins them in spawn order.
//
// RunWorkload does not return if the buffer deadlocks; detecting that is
// the runtime's job.
func RunWorkload(rt Runtime, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	buffer := NewBoundedBuffer[int](rt, cfg.BufferSize)

	tasks := make([]Handle, 0, cfg.Readers+cfg.Writers)
	for range cfg.Readers {
		tasks = append(tasks, rt.Spawn(func() error {
			reader(buffer, cfg.Iterations)
			return nil
		}))
	}
	for _, n := range cfg.WriterShares() {
		tasks = append(tasks, rt.Spawn(func() error {
			writer(buffer, n)
			return nil
		}))
	}

	var errs []error
	for _, h := range tasks {
		if err := h.Join(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FindDeadlockConfiguration samples a configuration from rt.Rand, logs it
// and runs it. Re-executed under an exploration engine, it searches the
// configuration space and the schedule space at once.
func FindDeadlockConfiguration(rt Runtime) error {
	cfg := SampleConfig(rt.Rand())
	rt.Logger().Info("sampled configuration",
		"buffer_size", cfg.BufferSize,
		"readers", cfg.Readers,
		"writers", cfg.Writers,
		"iterations", cfg.Iterations)
	return RunWorkload(rt, cfg)
}

// MinimalDeadlock runs [MinimalConfig]. Given an adversarial schedule it
// deadlocks; given a friendly one all ten items pair up.
func MinimalDeadlock(rt Runtime) error {
	return RunWorkload(rt, MinimalConfig)
}

func reader(b *BoundedBuffer[int], iterations int) {
	for range iterations {
		_ = b.Take()
	}
}

func writer(b *BoundedBuffer[int], iterations int) {
	for i := range iterations {
		b.Put(i)
	}
}
