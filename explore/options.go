// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import "github.com/go-logr/logr"

const (
	// DefaultIterations is the number of executions Run performs unless
	// Iterations is called.
	DefaultIterations = 100

	// DefaultMaxSteps bounds the scheduling points of one execution.
	DefaultMaxSteps = 100_000
)

// Options configures an exploration.
type Options struct {
	iterations int

	// Step budget per execution, and whether running out is a failure
	maxSteps       int
	failOnMaxSteps bool

	// Keep exploring after a failed execution
	continueOnFailure bool

	logger logr.Logger
}

// Builder configures and runs explorations with a fluent API.
//
// Example:
//
//	// Stop at the first failure (default)
//	report := explore.New(explore.NewRandom(seed)).Iterations(1000).Run(body)
//
//	// PCT, collect statistics over every execution
//	report := explore.New(explore.NewPCT(seed, 3)).
//	    Iterations(1000).
//	    ContinueOnFailure().
//	    Run(body)
//
//	// Treat a spin loop that never ends as a failure
//	report := explore.New(explore.NewPCT(seed, 1)).FailAfter(1000).Run(body)
type Builder struct {
	strategy Strategy
	opts     Options
}

// New creates a builder exploring with s.
//
// Panics if s is nil.
func New(s Strategy) *Builder {
	if s == nil {
		panic("explore: nil strategy")
	}
	return &Builder{opts: Options{
		iterations: DefaultIterations,
		maxSteps:   DefaultMaxSteps,
		logger:     logr.Discard(),
	}, strategy: s}
}

// Iterations sets the number of executions. Panics if n < 1.
func (b *Builder) Iterations(n int) *Builder {
	if n < 1 {
		panic("explore: iterations must be >= 1")
	}
	b.opts.iterations = n
	return b
}

// MaxSteps bounds each execution to n scheduling points. An execution
// that runs out is counted as step-limited, not failed.
// Panics if n < 1.
func (b *Builder) MaxSteps(n int) *Builder {
	if n < 1 {
		panic("explore: max steps must be >= 1")
	}
	b.opts.maxSteps = n
	b.opts.failOnMaxSteps = false
	return b
}

// FailAfter bounds each execution to n scheduling points and fails an
// execution that runs out with ErrStepLimit. Panics if n < 1.
func (b *Builder) FailAfter(n int) *Builder {
	if n < 1 {
		panic("explore: max steps must be >= 1")
	}
	b.opts.maxSteps = n
	b.opts.failOnMaxSteps = true
	return b
}

// ContinueOnFailure keeps exploring after a failed execution.
func (b *Builder) ContinueOnFailure() *Builder {
	b.opts.continueOnFailure = true
	return b
}

// Logger sets the logger handed to bodies and used for engine events.
func (b *Builder) Logger(l logr.Logger) *Builder {
	b.opts.logger = l
	return b
}
