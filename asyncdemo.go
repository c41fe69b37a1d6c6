// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sut

import "code.hybscloud.com/atomix"

const asyncRounds = 10

// counterState is shared by the updater and the reader loop.
// value is only touched while a guard on mu is held.
type counterState struct {
	mu    RWMutex
	value uint64
}

func (s *counterState) positive() bool { return s.value > 0 }

func (s *counterState) update() { s.value++ }

// AsyncMatchDeadlock reproduces a read-lock self-deadlock.
//
// A background task repeatedly takes the write lock, bumps the counter
// and yields. The foreground task takes the read lock and branches on the
// counter; in the positive branch it yields while STILL holding the read
// guard and then takes the read lock a second time. Whether the second
// acquisition deadlocks behind the queued writer or is rejected as a
// reentry depends on the runtime. The guard is deliberately held across
// the yield.
func AsyncMatchDeadlock(rt Runtime) error {
	log := rt.Logger().WithName("async-match")
	state := &counterState{mu: rt.NewRWMutex()}
	var done atomix.Bool
	defer done.Store(true)

	rt.Spawn(func() error {
		for !done.Load() {
			log.V(1).Info("updating...")
			g, err := state.mu.Lock()
			if err != nil {
				return err
			}
			state.update()
			g.Unlock()
			rt.Yield()
		}
		return nil
	})

	for range asyncRounds {
		g, err := state.mu.RLock()
		if err != nil {
			return err
		}
		if state.positive() {
			log.V(1).Info("it's true!")
			rt.Yield()
			again, err := state.mu.RLock()
			if err != nil {
				g.Unlock()
				return err
			}
			log.V(1).Info("read counter", "bar", state.value)
			again.Unlock()
		} else {
			log.V(1).Info("it's false!")
		}
		g.Unlock()
	}
	log.V(1).Info("okay done")
	return nil
}
