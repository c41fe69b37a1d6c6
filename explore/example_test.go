// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore_test

import (
	"context"
	"errors"
	"fmt"

	"code.hybscloud.com/sut"
	"code.hybscloud.com/sut/explore"
)

// ExampleBuilder collects statistics over every execution instead of
// stopping at the first failure.
func ExampleBuilder() {
	body := func(rt sut.Runtime) error {
		a, b := rt.NewMutex(), rt.NewMutex()
		h := rt.Spawn(func() error {
			b.Lock()
			a.Lock()
			a.Unlock()
			b.Unlock()
			return nil
		})
		a.Lock()
		b.Lock()
		b.Unlock()
		a.Unlock()
		return h.Join()
	}

	report := explore.New(explore.NewPCT(1, 2)).
		Iterations(500).
		ContinueOnFailure().
		Run(body)

	fmt.Println("executions:", report.Executions)
	fmt.Println("all failures are deadlocks:", report.Deadlocks() == len(report.Failures))
	fmt.Println("some completed:", report.Completed > 0)

	// Output:
	// executions: 500
	// all failures are deadlocks: true
	// some completed: true
}

func ExampleSweep() {
	results, err := (&explore.Sweep{
		Cases: []explore.Case{
			{Name: "lock_order", Body: sut.LockOrder},
			{Name: "figure5", Body: sut.Figure5},
		},
		Modes:      []explore.Mode{explore.RandomMode(1), explore.PCTMode(1, 1)},
		Iterations: 200,
	}).Run(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range results {
		fmt.Printf("%s/%s: assertion failure found: %v\n",
			r.Case, r.Mode, errors.Is(r.Report.Err(), sut.ErrAssertion))
	}

	// Output:
	// lock_order/RANDOM: assertion failure found: true
	// lock_order/PCT: assertion failure found: true
	// figure5/RANDOM: assertion failure found: false
	// figure5/PCT: assertion failure found: true
}
