// Package timing contains the domain logic for the AV sync helper: the
// timing model, the flash/beep event sequencer, the 3-2-1 countdown state
// machine and the repeat loop.
//
// Maintenance notes:
//   - Mutable fields on Model are accessed by the command loop, the UI
//     thread (entry commits) and scheduled callbacks. All of them are
//     protected by a mutex; readers that need a coherent view of several
//     fields must go through Snapshot() rather than chaining getters.
//   - Lower bounds (tone frequency, step and interval floors, the fps
//     division guard) are applied when values are read, not when they are
//     written, so a half-typed entry never fights the clamp. The raw value
//     stays in the model; the snapshot carries the clamped one.
package timing

import (
	"fmt"
	"math"
	"sync"
)

// DelayTarget selects which modality is deliberately offset in time.
type DelayTarget int

const (
	TargetAudio DelayTarget = iota
	TargetVisual
)

func (t DelayTarget) String() string {
	if t == TargetVisual {
		return "Visual"
	}
	return "Audio"
}

// Value floors and ranges. The fps guard only exists to keep the frames→ms
// division defined; real frame rates are orders of magnitude above it.
const (
	MinFPS           = 1e-6
	MinToneFreqHz    = 50
	MinToneDurMs     = 20
	MinFlashDurMs    = 1
	MinStepMs        = 200
	MinIntervalMs    = 200
	DelayFramesLimit = 80.0
)

// Defaults match a 24fps film chain with a one-second repeat.
const (
	DefaultFPS           = 24.0
	DefaultBaseFrames    = 20.25
	DefaultRoundedFrames = 21
	DefaultToneFreqHz    = 1000
	DefaultToneDurMs     = 150
	DefaultFlashDurMs    = 150
	DefaultStepMs        = 700
	DefaultIntervalMs    = 1000
)

// Model holds every user-adjustable value. It is owned by the Controller;
// the UI reads and writes it through explicit calls only.
type Model struct {
	mu sync.RWMutex

	fps           float64
	baseFrames    float64
	roundedFrames int
	delayFrames   float64
	target        DelayTarget

	toneFreqHz int
	toneDurMs  int
	flashDurMs int

	countdownOn     bool
	countdownStepMs int
	countdownBeeps  bool

	repeatIntervalMs int
}

// NewModel returns a model with the defaults the tool starts with.
func NewModel() *Model {
	return &Model{
		fps:              DefaultFPS,
		baseFrames:       DefaultBaseFrames,
		roundedFrames:    DefaultRoundedFrames,
		target:           TargetAudio,
		toneFreqHz:       DefaultToneFreqHz,
		toneDurMs:        DefaultToneDurMs,
		flashDurMs:       DefaultFlashDurMs,
		countdownStepMs:  DefaultStepMs,
		countdownBeeps:   true,
		repeatIntervalMs: DefaultIntervalMs,
	}
}

// Snapshot is a coherent, clamped copy of the model taken under the lock.
// Sequencing and display work from snapshots so a settings change mid-test
// only affects the next invocation.
type Snapshot struct {
	FPS           float64
	BaseFrames    float64
	RoundedFrames int
	DelayFrames   float64
	Target        DelayTarget

	ToneFreqHz int
	ToneDurMs  int
	FlashDurMs int

	CountdownOn     bool
	CountdownStepMs int
	CountdownBeeps  bool

	RepeatIntervalMs int
}

// Snapshot returns a consistent view with all floors applied.
func (m *Model) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		FPS:              math.Max(m.fps, MinFPS),
		BaseFrames:       m.baseFrames,
		RoundedFrames:    m.roundedFrames,
		DelayFrames:      m.delayFrames,
		Target:           m.target,
		ToneFreqHz:       max(m.toneFreqHz, MinToneFreqHz),
		ToneDurMs:        max(m.toneDurMs, MinToneDurMs),
		FlashDurMs:       max(m.flashDurMs, MinFlashDurMs),
		CountdownOn:      m.countdownOn,
		CountdownStepMs:  max(m.countdownStepMs, MinStepMs),
		CountdownBeeps:   m.countdownBeeps,
		RepeatIntervalMs: max(m.repeatIntervalMs, MinIntervalMs),
	}
}

// FramesToMs converts a frame count to milliseconds at the snapshot's rate.
// Pure; FramesToMs(0) == 0 for every fps.
func (s Snapshot) FramesToMs(frames float64) float64 {
	return 1000.0 * frames / math.Max(s.FPS, MinFPS)
}

// DelayMs is the absolute gap between the two test events, rounded to
// whole milliseconds.
func (s Snapshot) DelayMs() int {
	return int(math.Round(s.FramesToMs(math.Abs(s.DelayFrames))))
}

// Suggested returns the informational DTS setting estimate and the formula
// used: base − delay when the audio side is the one being delayed, base +
// delay otherwise. Display text only, never used for scheduling.
func (s Snapshot) Suggested() (float64, string) {
	if s.Target == TargetAudio {
		return s.BaseFrames - s.DelayFrames, "base − delay"
	}
	return s.BaseFrames + s.DelayFrames, "base + delay"
}

// DelaySummary is the one-line label next to the delay slider.
func (s Snapshot) DelaySummary() string {
	leadLag := "Audio delayed"
	if s.Target == TargetVisual {
		leadLag = "Visual delayed"
	}
	signText := ""
	switch {
	case s.DelayFrames < 0:
		signText = " (target leads)"
	case s.DelayFrames > 0:
		signText = " (target lags)"
	}
	return fmt.Sprintf("%+.2f frames → %+.0f ms  [%s%s]",
		s.DelayFrames, s.FramesToMs(s.DelayFrames), leadLag, signText)
}

// InfoText is the multi-line status block shown in the flash panel corner.
func (s Snapshot) InfoText() string {
	suggested, formula := s.Suggested()
	return fmt.Sprintf(
		"FPS: %.3f\n"+
			"Physical head→gate: %.2f frames (rounded: %d)\n"+
			"Delay target: %s   |   Set delay: %+.2f frames ≈ %+.0f ms\n"+
			"Suggest DTS setting ≈ %s = %.2f frames\n"+
			"(Guide: |adjust| ≈ %.0f ms at %.3f fps)\n"+
			"\n"+
			"Hotkeys: ←/→ = ±0.25 frame, ↑/↓ = ±1 frame, Space = Test",
		s.FPS,
		s.BaseFrames, s.RoundedFrames,
		s.Target, s.DelayFrames, s.FramesToMs(s.DelayFrames),
		formula, suggested,
		s.FramesToMs(math.Abs(s.DelayFrames)), s.FPS,
	)
}

// SetFPS stores a new frame rate. Non-positive values are kept as entered
// but the snapshot clamps them before any division.
func (m *Model) SetFPS(fps float64) {
	m.mu.Lock()
	m.fps = fps
	m.mu.Unlock()
}

// SetBaseFrames updates the informational head→gate offset.
func (m *Model) SetBaseFrames(frames float64) {
	m.mu.Lock()
	m.baseFrames = frames
	m.mu.Unlock()
}

// SetRoundedFrames updates the informational rounded offset.
func (m *Model) SetRoundedFrames(frames int) {
	m.mu.Lock()
	m.roundedFrames = frames
	m.mu.Unlock()
}

// SetDelayFrames sets the delay, clamped to the slider range.
func (m *Model) SetDelayFrames(frames float64) {
	m.mu.Lock()
	m.delayFrames = clampDelay(frames)
	m.mu.Unlock()
}

// NudgeDelay shifts the delay by delta frames, clamped to the slider range.
// Returns the new value for immediate UI feedback.
func (m *Model) NudgeDelay(delta float64) float64 {
	m.mu.Lock()
	m.delayFrames = clampDelay(m.delayFrames + delta)
	v := m.delayFrames
	m.mu.Unlock()
	return v
}

// SetTarget selects which modality is being delayed.
func (m *Model) SetTarget(t DelayTarget) {
	m.mu.Lock()
	m.target = t
	m.mu.Unlock()
}

// SetTone updates the test tone frequency and length.
func (m *Model) SetTone(freqHz, durMs int) {
	m.mu.Lock()
	m.toneFreqHz = freqHz
	m.toneDurMs = durMs
	m.mu.Unlock()
}

// SetFlashDurMs updates the flash length.
func (m *Model) SetFlashDurMs(durMs int) {
	m.mu.Lock()
	m.flashDurMs = durMs
	m.mu.Unlock()
}

// SetCountdown updates the pre-roll settings.
func (m *Model) SetCountdown(on bool, stepMs int, beeps bool) {
	m.mu.Lock()
	m.countdownOn = on
	m.countdownStepMs = stepMs
	m.countdownBeeps = beeps
	m.mu.Unlock()
}

// SetRepeatIntervalMs updates the repeat interval.
func (m *Model) SetRepeatIntervalMs(ms int) {
	m.mu.Lock()
	m.repeatIntervalMs = ms
	m.mu.Unlock()
}

func clampDelay(frames float64) float64 {
	if frames > DelayFramesLimit {
		return DelayFramesLimit
	}
	if frames < -DelayFramesLimit {
		return -DelayFramesLimit
	}
	return frames
}
