package timing

import "time"

// EventKind identifies one of the two test events.
type EventKind int

const (
	EventFlash EventKind = iota
	EventBeep
)

func (e EventKind) String() string {
	if e == EventBeep {
		return "Beep"
	}
	return "Flash"
}

// TestVolume is the gain of the main test tone.
const TestVolume = 0.2

// Plan is the resolved order and spacing of one test's event pair.
type Plan struct {
	First  EventKind
	Second EventKind
	Gap    time.Duration
}

// PlanEvents resolves the order of the flash and the beep from the delay
// target and the sign of the delay. "Target = Audio, delay ≥ 0" means the
// audio event is the one held back, so the flash leads; the remaining rows
// follow by symmetry. Zero delay counts as non-negative.
func PlanEvents(s Snapshot) Plan {
	gap := time.Duration(s.DelayMs()) * time.Millisecond
	flashFirst := (s.Target == TargetAudio) == (s.DelayFrames >= 0)
	if flashFirst {
		return Plan{First: EventFlash, Second: EventBeep, Gap: gap}
	}
	return Plan{First: EventBeep, Second: EventFlash, Gap: gap}
}

// RunEvents fires the test pair: the first event immediately, the second
// after the gap. A zero gap skips the scheduler entirely so the two fire
// back to back on the caller's path.
func RunEvents(s Snapshot, sched Scheduler, out Output) {
	plan := PlanEvents(s)
	fire := func(e EventKind) {
		switch e {
		case EventFlash:
			out.FlashOn(s.FlashDurMs)
		case EventBeep:
			out.Beep(s.ToneFreqHz, s.ToneDurMs, TestVolume)
		}
	}

	fire(plan.First)
	if plan.Gap == 0 {
		fire(plan.Second)
		return
	}
	second := plan.Second
	sched.Schedule(plan.Gap, func() { fire(second) })
}
