// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import "errors"

var (
	// ErrDeadlock fails an execution in which no task can run while some
	// have not finished.
	ErrDeadlock = errors.New("explore: deadlock")

	// ErrPanic wraps a panic raised by a task.
	ErrPanic = errors.New("explore: task panicked")

	// ErrStepLimit fails an execution that exceeds the FailAfter budget.
	ErrStepLimit = errors.New("explore: exceeded max steps")

	// ErrStrategy fails an execution whose strategy picked a task that
	// is not runnable.
	ErrStrategy = errors.New("explore: strategy picked a task that cannot run")
)
