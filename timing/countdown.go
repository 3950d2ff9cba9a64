package timing

import "time"

// CountdownState enumerates the pre-roll state machine. Transitions only
// move forward: Idle → Count3 → Count2 → Count1 → Running, one step per
// scheduler callback.
type CountdownState int

const (
	CountdownIdle CountdownState = iota
	CountdownCount3
	CountdownCount2
	CountdownCount1
	CountdownRunning
)

// Cue tone parameters: a gentle ascending series, one per displayed digit.
var countdownCueFreqs = [3]int{600, 700, 800}

const (
	CueDurMs  = 90
	CueVolume = 0.15
)

// countdownLabels indexes display text by state.
var countdownLabels = map[CountdownState]string{
	CountdownCount3: "3",
	CountdownCount2: "2",
	CountdownCount1: "1",
}

// RunCountdown drives the 3-2-1 pre-roll and then hands off to the test
// pair. Each Count state shows its digit, optionally plays its cue, and
// schedules the next transition after the step interval. Reaching Running
// clears the digit and invokes then exactly once.
func RunCountdown(s Snapshot, sched Scheduler, out Output, then func()) {
	step := time.Duration(s.CountdownStepMs) * time.Millisecond

	var enter func(state CountdownState)
	enter = func(state CountdownState) {
		if state == CountdownRunning {
			out.ClearCount()
			then()
			return
		}
		out.ShowCount(countdownLabels[state])
		if s.CountdownBeeps {
			out.Beep(countdownCueFreqs[int(state-CountdownCount3)], CueDurMs, CueVolume)
		}
		next := state + 1
		sched.Schedule(step, func() { enter(next) })
	}

	enter(CountdownCount3)
}
