package timing

import (
	"fmt"
	"sync"
	"time"
)

// repeater re-runs the test on a fixed interval. Enable/disable comes from
// the UI thread only; the generation counter makes a tick whose timer
// already fired before Stop a no-op, so no test starts after disablement.
// The next tick is measured from tick completion, so the loop drifts by the
// test's own cost. That is acceptable here.
type repeater struct {
	mu      sync.Mutex
	running bool
	gen     uint64
	cancel  func() bool
}

// Start begins the loop: the first tick fires one full interval from now.
func (r *repeater) Start(intervalOf func() int, run func(), sched Scheduler, out Output) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	r.scheduleNext(gen, intervalOf, run, sched, out)
}

// Stop cancels the pending tick and clears the hint label.
func (r *repeater) Stop(out Output) {
	r.mu.Lock()
	r.running = false
	r.gen++
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	out.SetNextTickNote("")
}

func (r *repeater) scheduleNext(gen uint64, intervalOf func() int, run func(), sched Scheduler, out Output) {
	// Interval is re-read each cycle so edits apply to the next tick.
	interval := intervalOf()
	out.SetNextTickNote(fmt.Sprintf("Next in %d ms", interval))

	cancel := sched.Schedule(time.Duration(interval)*time.Millisecond, func() {
		r.mu.Lock()
		stale := !r.running || r.gen != gen
		r.mu.Unlock()
		if stale {
			return
		}
		run()
		r.scheduleNext(gen, intervalOf, run, sched, out)
	})

	r.mu.Lock()
	if r.running && r.gen == gen {
		r.cancel = cancel
	} else {
		// Disabled while we were scheduling; kill the fresh timer too.
		r.mu.Unlock()
		cancel()
		return
	}
	r.mu.Unlock()
}
