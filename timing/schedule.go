package timing

import "time"

// Scheduler is the single delayed-callback primitive the core logic uses.
// The second test event, flash-off, countdown steps and repeat ticks all go
// through it; tests inject a fake that fires callbacks by hand. The
// returned cancel reports whether the callback was stopped before running,
// with time.Timer.Stop semantics.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func() bool)
}

// TimerScheduler runs callbacks on time.AfterFunc goroutines.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// Output is everything the core logic can do to the outside world. The
// application implements it by bridging to the Fyne canvas and the audio
// player; tests implement it with an event log.
type Output interface {
	// FlashOn lights the flash panel; the implementation turns it back
	// off after durMs.
	FlashOn(durMs int)
	// Beep plays a tone without blocking the caller.
	Beep(freqHz, durMs int, volume float64)
	// ShowCount displays a countdown digit in the flash panel.
	ShowCount(label string)
	// ClearCount removes the countdown digit.
	ClearCount()
	// SetNextTickNote updates the "Next in N ms" repeat hint; empty
	// clears it.
	SetNextTickNote(text string)
}
