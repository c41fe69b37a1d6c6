// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import (
	"context"
	"fmt"
	"math/rand/v2"

	"code.hybscloud.com/sut"
)

// Run explores body and returns the report.
func (b *Builder) Run(body sut.Body) *Report {
	r, _ := b.RunContext(context.Background(), body)
	return r
}

// RunContext explores body until the iterations are spent, an execution
// fails (unless ContinueOnFailure), or ctx is done. ctx is checked
// between executions; on cancellation the partial report is returned with
// ctx's error.
func (b *Builder) RunContext(ctx context.Context, body sut.Body) (*Report, error) {
	r := &Report{}
	for i := range b.opts.iterations {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		b.strategy.NewExecution()
		e := newExecution(i, b.strategy, &b.opts)
		e.logger.V(1).Info("new execution")
		e.run(body)
		r.record(i, e)
		if e.outcome != outcomeFailed {
			continue
		}
		e.logger.Error(e.err, "execution failed", "steps", e.steps)
		if !b.opts.continueOnFailure {
			break
		}
	}
	return r, nil
}

// CheckRandom explores body with a randomly seeded Random strategy and
// returns the first failure. The seed is part of the error.
func CheckRandom(body sut.Body, iterations int) error {
	seed := rand.Uint64()
	err := New(NewRandom(seed)).Iterations(iterations).Run(body).Err()
	if err != nil {
		return fmt.Errorf("random seed %d: %w", seed, err)
	}
	return nil
}

// CheckPCT explores body with a randomly seeded PCT strategy of the given
// depth and returns the first failure. The seed is part of the error.
func CheckPCT(body sut.Body, iterations, depth int) error {
	seed := rand.Uint64()
	err := New(NewPCT(seed, depth)).Iterations(iterations).Run(body).Err()
	if err != nil {
		return fmt.Errorf("pct seed %d: %w", seed, err)
	}
	return nil
}
