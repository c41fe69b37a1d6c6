// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import (
	"errors"
	"fmt"
)

// Report summarizes an exploration.
type Report struct {
	// Executions is the number of executions run.
	Executions int

	// Completed counts executions whose main task returned nil.
	Completed int

	// StepLimited counts executions cut off by MaxSteps.
	StepLimited int

	// LongestExecution is the largest number of scheduling points seen.
	LongestExecution int

	// Failures lists failed executions in order.
	Failures []Failure
}

// Failure is one failed execution.
type Failure struct {
	Execution int
	Steps     int
	Err       error
}

func (f Failure) Error() string {
	return fmt.Sprintf("execution %d (%d steps): %v", f.Execution, f.Steps, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Failed reports whether any execution failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Err returns the first failure, or nil.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return r.Failures[0]
}

// Count returns the number of failures whose error wraps target.
func (r *Report) Count(target error) int {
	n := 0
	for _, f := range r.Failures {
		if errors.Is(f.Err, target) {
			n++
		}
	}
	return n
}

// Deadlocks returns the number of executions that deadlocked.
func (r *Report) Deadlocks() int {
	return r.Count(ErrDeadlock)
}

func (r *Report) record(index int, e *execution) {
	r.Executions++
	r.LongestExecution = max(r.LongestExecution, e.steps)
	switch e.outcome {
	case outcomeCompleted:
		r.Completed++
	case outcomeStepLimit:
		r.StepLimited++
	case outcomeFailed:
		r.Failures = append(r.Failures, Failure{Execution: index, Steps: e.steps, Err: e.err})
	}
}
