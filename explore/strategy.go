// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import "math/rand/v2"

// TaskID identifies a task within one execution. The main task is 0;
// spawned tasks are numbered in spawn order.
type TaskID int

// NoTask is passed as the current task when it has just finished.
const NoTask TaskID = -1

// Strategy chooses interleavings.
//
// A Strategy is consulted at every scheduling point of an execution and
// also supplies the execution's randomness (condition variable wake-ups
// and Runtime.Rand), so one seed determines one schedule.
//
// Strategies are not safe for concurrent use; an execution consults its
// strategy from one task at a time.
type Strategy interface {
	rand.Source

	// NewExecution is called before every execution.
	NewExecution()

	// NextTask picks the task to run from runnable, which is never empty
	// and is sorted by TaskID. yielding reports that current reached the
	// scheduling point through Yield.
	NextTask(runnable []TaskID, current TaskID, yielding bool) TaskID
}

// Random picks uniformly among runnable tasks at every scheduling point.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: newRNG(seed)}
}

// NewExecution is a no-op: the generator keeps running across executions.
func (s *Random) NewExecution() {}

// NextTask returns a uniformly chosen runnable task.
func (s *Random) NextTask(runnable []TaskID, _ TaskID, _ bool) TaskID {
	return runnable[s.rng.IntN(len(runnable))]
}

// Uint64 implements rand.Source.
func (s *Random) Uint64() uint64 { return s.rng.Uint64() }

// defaultPCTSteps is the step estimate before any execution has finished.
const defaultPCTSteps = 100

// PCT is Probabilistic Concurrency Testing (Burckhardt et al., ASPLOS 2010).
//
// Each task receives a random priority of at least depth when first seen
// and the highest priority runnable task always runs. depth-1 change
// points are drawn uniformly over the estimated execution length; at the
// i-th one, the running task drops to priority i, below every initial
// priority. A bug of depth d is found with probability at least
// 1/(n*k^(d-1)) for n tasks and k steps.
//
// A task reaching a scheduling point through Yield drops below every
// other task, so spin loops that yield cannot starve the tasks they wait
// for.
//
// The execution length is estimated as the longest execution seen so far.
type PCT struct {
	rng          *rand.Rand
	depth        int
	estimate     int
	steps        int
	lowest       int
	priorities   map[TaskID]int
	changePoints map[int]int
}

// NewPCT creates a PCT strategy for bugs up to the given depth.
// Panics if depth < 1.
func NewPCT(seed uint64, depth int) *PCT {
	if depth < 1 {
		panic("explore: PCT depth must be >= 1")
	}
	return &PCT{
		rng:          newRNG(seed),
		depth:        depth,
		estimate:     defaultPCTSteps,
		priorities:   make(map[TaskID]int),
		changePoints: make(map[int]int),
	}
}

// NewExecution resets priorities and draws new change points.
func (p *PCT) NewExecution() {
	p.estimate = max(p.estimate, p.steps)
	p.steps = 0
	p.lowest = 1
	clear(p.priorities)
	clear(p.changePoints)
	// Change points are distinct steps; a collision is redrawn.
	n := min(p.depth-1, p.estimate)
	for len(p.changePoints) < n {
		step := 1 + p.rng.IntN(p.estimate)
		if _, ok := p.changePoints[step]; ok {
			continue
		}
		p.changePoints[step] = len(p.changePoints) + 1
	}
}

// NextTask returns the highest priority runnable task.
func (p *PCT) NextTask(runnable []TaskID, current TaskID, yielding bool) TaskID {
	p.steps++
	for _, id := range runnable {
		if _, ok := p.priorities[id]; !ok {
			p.priorities[id] = p.depth + p.rng.IntN(1<<30)
		}
	}
	if yielding && current != NoTask {
		p.lowest--
		p.priorities[current] = p.lowest
	}

	next := p.highest(runnable)
	if prio, ok := p.changePoints[p.steps]; ok {
		p.priorities[next] = prio
		next = p.highest(runnable)
	}
	return next
}

// Uint64 implements rand.Source.
func (p *PCT) Uint64() uint64 { return p.rng.Uint64() }

// highest breaks ties toward the lower TaskID.
func (p *PCT) highest(runnable []TaskID) TaskID {
	best := runnable[0]
	for _, id := range runnable[1:] {
		if p.priorities[id] > p.priorities[best] {
			best = id
		}
	}
	return best
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
