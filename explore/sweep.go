// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import (
	"context"
	"time"

	"code.hybscloud.com/sut"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
)

// Case is a named body.
type Case struct {
	Name string
	Body sut.Body
}

// Mode is a named strategy factory. Every Sweep pair gets its own
// strategy, since strategies are not safe for concurrent use.
type Mode struct {
	Name     string
	Strategy func() Strategy
}

// RandomMode returns the "RANDOM" mode.
func RandomMode(seed uint64) Mode {
	return Mode{Name: "RANDOM", Strategy: func() Strategy { return NewRandom(seed) }}
}

// PCTMode returns the "PCT" mode with the given depth.
func PCTMode(seed uint64, depth int) Mode {
	return Mode{Name: "PCT", Strategy: func() Strategy { return NewPCT(seed, depth) }}
}

// Result is the outcome of one case under one mode.
type Result struct {
	Case    string
	Mode    string
	Report  *Report
	Elapsed time.Duration
}

// Sweep explores every case under every mode.
type Sweep struct {
	Cases []Case
	Modes []Mode

	// Iterations per pair; DefaultIterations if zero.
	Iterations int

	// Parallelism bounds the pairs explored at once; unbounded if zero.
	Parallelism int

	// FailAfter makes step exhaustion a failure when positive.
	FailAfter int

	Logger logr.Logger
}

// Run returns one Result per (case, mode) pair, ordered by case and then
// by mode. Each pair stops at its first failure. Run returns early with
// ctx's error if ctx is done.
func (s *Sweep) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(s.Cases)*len(s.Modes))
	g, ctx := errgroup.WithContext(ctx)
	if s.Parallelism > 0 {
		g.SetLimit(s.Parallelism)
	}

	logger := s.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	for i, c := range s.Cases {
		for j, m := range s.Modes {
			slot := &results[i*len(s.Modes)+j]
			g.Go(func() error {
				b := New(m.Strategy()).Logger(logger.WithValues("test", c.Name, "mode", m.Name))
				if s.Iterations > 0 {
					b.Iterations(s.Iterations)
				}
				if s.FailAfter > 0 {
					b.FailAfter(s.FailAfter)
				}
				start := time.Now()
				report, err := b.RunContext(ctx, c.Body)
				*slot = Result{Case: c.Name, Mode: m.Name, Report: report, Elapsed: time.Since(start)}
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
