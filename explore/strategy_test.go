// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package explore

import (
	"testing"
)

// =============================================================================
// Random
// =============================================================================

func TestRandomNextTaskUniform(t *testing.T) {
	s := NewRandom(1)
	s.NewExecution()
	runnable := []TaskID{0, 3, 5}

	counts := map[TaskID]int{}
	const draws = 30000
	for range draws {
		counts[s.NextTask(runnable, 0, false)]++
	}
	if len(counts) != len(runnable) {
		t.Fatalf("picked tasks: got %v, want each of %v", counts, runnable)
	}
	want := draws / len(runnable)
	for _, id := range runnable {
		if d := counts[id] - want; d < -draws/20 || d > draws/20 {
			t.Errorf("task %d: picked %d times, want about %d", id, counts[id], want)
		}
	}
}

// =============================================================================
// PCT
// =============================================================================

func TestPCTRunsHighestPriority(t *testing.T) {
	p := NewPCT(1, 1)
	p.NewExecution()
	runnable := []TaskID{0, 1, 2, 3}

	first := p.NextTask(runnable, 0, false)
	for i := range 200 {
		if got := p.NextTask(runnable, first, false); got != first {
			t.Fatalf("step %d: got task %d, want %d", i, got, first)
		}
	}
	for _, id := range runnable {
		if p.priorities[id] < p.depth {
			t.Errorf("task %d: initial priority %d below depth %d", id, p.priorities[id], p.depth)
		}
	}
}

func TestPCTYieldDeprioritizes(t *testing.T) {
	p := NewPCT(2, 1)
	p.NewExecution()
	runnable := []TaskID{0, 1, 2}

	cur := p.NextTask(runnable, 0, false)
	seen := map[TaskID]bool{cur: true}
	for range len(runnable) - 1 {
		next := p.NextTask(runnable, cur, true)
		if next == cur {
			t.Fatalf("yielding task %d picked again", cur)
		}
		if p.priorities[cur] >= 1 {
			t.Fatalf("yielding task %d: priority %d, want < 1", cur, p.priorities[cur])
		}
		cur = next
		seen[cur] = true
	}
	if len(seen) != len(runnable) {
		t.Fatalf("tasks run: got %d, want %d", len(seen), len(runnable))
	}

	// Each yield lowers the floor by one.
	if p.lowest != -1 {
		t.Fatalf("lowest: got %d, want -1", p.lowest)
	}
}

func TestPCTYieldFromFinishedTask(t *testing.T) {
	p := NewPCT(3, 1)
	p.NewExecution()
	p.NextTask([]TaskID{0, 1}, 0, false)
	if id := p.NextTask([]TaskID{1}, NoTask, true); id != 1 {
		t.Fatalf("NextTask: got %d, want 1", id)
	}
	if p.lowest != 1 {
		t.Fatalf("lowest: got %d, want 1", p.lowest)
	}
}

func TestPCTChangePoints(t *testing.T) {
	for depth := 1; depth <= 5; depth++ {
		p := NewPCT(uint64(depth), depth)
		for range 100 {
			p.NewExecution()
			checkChangePoints(t, p, depth-1)
		}
	}
}

// A depth close to the step estimate collides on nearly every draw.
func TestPCTChangePointsDistinct(t *testing.T) {
	const depth = 80
	p := NewPCT(9, depth)
	for range 50 {
		p.NewExecution()
		checkChangePoints(t, p, depth-1)
	}

	// More change points than estimated steps: every step is one.
	p = NewPCT(9, defaultPCTSteps+10)
	p.NewExecution()
	checkChangePoints(t, p, defaultPCTSteps)
}

func checkChangePoints(t *testing.T, p *PCT, want int) {
	t.Helper()
	if len(p.changePoints) != want {
		t.Fatalf("depth %d: %d change points, want %d", p.depth, len(p.changePoints), want)
	}
	prios := make(map[int]bool, want)
	for step, prio := range p.changePoints {
		if step < 1 || step > p.estimate {
			t.Fatalf("change point at step %d outside [1, %d]", step, p.estimate)
		}
		if prio < 1 || prio > want {
			t.Fatalf("change point priority %d outside [1, %d]", prio, want)
		}
		prios[prio] = true
	}
	if len(prios) != want {
		t.Fatalf("change point priorities: %d distinct, want %d", len(prios), want)
	}
}

// At a change point the running task drops below every initial priority.
func TestPCTChangePointSwitchesTask(t *testing.T) {
	p := NewPCT(4, 2)
	p.NewExecution()
	clear(p.changePoints)
	p.changePoints[3] = 1

	runnable := []TaskID{0, 1}
	a := p.NextTask(runnable, 0, false)
	if got := p.NextTask(runnable, a, false); got != a {
		t.Fatalf("step 2: got task %d, want %d", got, a)
	}
	b := p.NextTask(runnable, a, false)
	if b == a {
		t.Fatalf("step 3: task %d still running after change point", a)
	}
	if p.priorities[a] != 1 {
		t.Fatalf("task %d: priority %d after change point, want 1", a, p.priorities[a])
	}
	if got := p.NextTask(runnable, b, false); got != b {
		t.Fatalf("step 4: got task %d, want %d", got, b)
	}
}

func TestPCTEstimateTracksLongestExecution(t *testing.T) {
	p := NewPCT(5, 3)
	p.NewExecution()
	if p.estimate != defaultPCTSteps {
		t.Fatalf("initial estimate: got %d, want %d", p.estimate, defaultPCTSteps)
	}

	for range 500 {
		p.NextTask([]TaskID{0}, 0, false)
	}
	p.NewExecution()
	if p.estimate != 500 || p.steps != 0 {
		t.Fatalf("after 500 steps: estimate %d steps %d, want 500 and 0", p.estimate, p.steps)
	}

	for range 10 {
		p.NextTask([]TaskID{0}, 0, false)
	}
	p.NewExecution()
	if p.estimate != 500 {
		t.Fatalf("after a shorter execution: estimate %d, want 500", p.estimate)
	}
}

func TestPCTTiesPreferLowerTaskID(t *testing.T) {
	p := NewPCT(6, 1)
	p.NewExecution()
	p.priorities[0] = 7
	p.priorities[1] = 7
	p.priorities[2] = 7
	if got := p.highest([]TaskID{0, 1, 2}); got != 0 {
		t.Errorf("highest of 0,1,2: got %d, want 0", got)
	}
	if got := p.highest([]TaskID{1, 2}); got != 1 {
		t.Errorf("highest of 1,2: got %d, want 1", got)
	}
}

func TestNewPCTPanicsOnZeroDepth(t *testing.T) {
	defer func() {
		if r := recover(); r != "explore: PCT depth must be >= 1" {
			t.Fatalf("NewPCT(1, 0): recovered %v", r)
		}
	}()
	NewPCT(1, 0)
}

// =============================================================================
// Replay
// =============================================================================

func TestStrategiesReplayWithSeed(t *testing.T) {
	for _, mk := range []func() Strategy{
		func() Strategy { return NewRandom(42) },
		func() Strategy { return NewPCT(42, 3) },
	} {
		a, b := mk(), mk()
		a.NewExecution()
		b.NewExecution()
		runnable := []TaskID{0, 1, 2, 3}
		cur := TaskID(0)
		for i := range 1000 {
			yielding := i%7 == 0
			x := a.NextTask(runnable, cur, yielding)
			y := b.NextTask(runnable, cur, yielding)
			if x != y {
				t.Fatalf("%T step %d: picked %d and %d", a, i, x, y)
			}
			if u, v := a.Uint64(), b.Uint64(); u != v {
				t.Fatalf("%T step %d: drew %d and %d", a, i, u, v)
			}
			cur = x
		}
	}
}
