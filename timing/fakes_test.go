package timing

import (
	"sync"
	"time"
)

// fakeScheduler records scheduled callbacks and fires them on demand,
// tracking a virtual clock so tests can assert event spacing without real
// timers.
type fakeScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*fakeTimer
}

type fakeTimer struct {
	at       time.Duration
	fn       func()
	canceled bool
	fired    bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{}
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	t := &fakeTimer{at: s.now + d, fn: fn}
	s.pending = append(s.pending, t)
	s.mu.Unlock()
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t.fired || t.canceled {
			return false
		}
		t.canceled = true
		return true
	}
}

// advance moves the virtual clock forward, firing due callbacks in order.
// Callbacks may schedule more work; newly due timers fire in the same pass.
func (s *fakeScheduler) advance(d time.Duration) {
	s.mu.Lock()
	deadline := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *fakeTimer
		for _, t := range s.pending {
			if t.fired || t.canceled || t.at > deadline {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			s.now = deadline
			s.mu.Unlock()
			return
		}
		next.fired = true
		s.now = next.at
		s.mu.Unlock()
		next.fn()
	}
}

// pendingCount reports timers that are neither fired nor canceled.
func (s *fakeScheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.fired && !t.canceled {
			n++
		}
	}
	return n
}

// recordedEvent is one observed Output call with its virtual timestamp.
type recordedEvent struct {
	at     time.Duration
	kind   string // "flash", "beep", "count", "clear", "note"
	label  string
	freqHz int
	durMs  int
	volume float64
}

// fakeOutput logs every Output call against the scheduler's clock.
type fakeOutput struct {
	mu     sync.Mutex
	sched  *fakeScheduler
	events []recordedEvent
}

func newFakeOutput(sched *fakeScheduler) *fakeOutput {
	return &fakeOutput{sched: sched}
}

func (o *fakeOutput) record(e recordedEvent) {
	o.sched.mu.Lock()
	e.at = o.sched.now
	o.sched.mu.Unlock()
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

func (o *fakeOutput) FlashOn(durMs int) {
	o.record(recordedEvent{kind: "flash", durMs: durMs})
}

func (o *fakeOutput) Beep(freqHz, durMs int, volume float64) {
	o.record(recordedEvent{kind: "beep", freqHz: freqHz, durMs: durMs, volume: volume})
}

func (o *fakeOutput) ShowCount(label string) {
	o.record(recordedEvent{kind: "count", label: label})
}

func (o *fakeOutput) ClearCount() {
	o.record(recordedEvent{kind: "clear"})
}

func (o *fakeOutput) SetNextTickNote(text string) {
	o.record(recordedEvent{kind: "note", label: text})
}

func (o *fakeOutput) byKind(kind string) []recordedEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []recordedEvent
	for _, e := range o.events {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// pairEvents returns just the flash/beep events, in order.
func (o *fakeOutput) pairEvents() []recordedEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []recordedEvent
	for _, e := range o.events {
		if e.kind == "flash" || e.kind == "beep" {
			out = append(out, e)
		}
	}
	return out
}
