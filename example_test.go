// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut_test

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/sut"
	"code.hybscloud.com/sut/explore"
	"github.com/go-logr/logr"
)

// ExampleNewBoundedBuffer shows the blocking operations on a native runtime.
func ExampleNewBoundedBuffer() {
	rt := sut.NewNative(1, logr.Discard())
	buf := sut.NewBoundedBuffer[string](rt, 2)

	h := rt.Spawn(func() error {
		for _, s := range []string{"a", "b", "c", "d"} {
			buf.Put(s)
		}
		return nil
	})
	for range 4 {
		fmt.Println(buf.Take())
	}
	if err := h.Join(); err != nil {
		fmt.Println(err)
	}

	// Output:
	// a
	// b
	// c
	// d
}

// ExampleBoundedBuffer_TryPut demonstrates handling backpressure without
// blocking.
func ExampleBoundedBuffer_TryPut() {
	buf := sut.NewBoundedBuffer[int](sut.NewNative(1, logr.Discard()), 3)

	filled := 0
	for i := 1; i <= 10; i++ {
		if err := buf.TryPut(i); sut.IsWouldBlock(err) {
			fmt.Printf("Backpressure at item %d (buffer full)\n", i)
			break
		}
		filled++
	}
	fmt.Printf("Filled %d items\n", filled)

	// Drain with a backoff, as a consumer polling a shared buffer would
	backoff := iox.Backoff{}
	for buf.Len() > 0 {
		v, err := buf.TryTake()
		if err != nil {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		fmt.Printf("Drained: %d\n", v)
	}

	// Output:
	// Backpressure at item 4 (buffer full)
	// Filled 3 items
	// Drained: 1
	// Drained: 2
	// Drained: 3
}

// ExampleMinimalDeadlock explores the two-reader, one-writer workload
// until some schedule strands both readers.
func ExampleMinimalDeadlock() {
	report := explore.New(explore.NewRandom(1)).
		Iterations(2000).
		Run(sut.MinimalDeadlock)

	fmt.Println("deadlock found:", errors.Is(report.Err(), explore.ErrDeadlock))

	// Output:
	// deadlock found: true
}

// ExampleAsyncMatchDeadlock shows a reentrant read lock being reported
// instead of hanging.
func ExampleAsyncMatchDeadlock() {
	report := explore.New(explore.NewRandom(1)).
		Iterations(100).
		Run(sut.AsyncMatchDeadlock)

	fmt.Println("reentry:", errors.Is(report.Err(), sut.ErrLockReentry))

	// Output:
	// reentry: true
}

// ExampleConfig_WriterShares shows how writers split the readers' total.
func ExampleConfig_WriterShares() {
	cfg := sut.Config{BufferSize: 2, Readers: 3, Writers: 4, Iterations: 7}
	fmt.Println(cfg.TotalItems(), cfg.WriterShares())

	// Output:
	// 21 [5 5 5 6]
}
