package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownShowsThreeStepsThenRuns(t *testing.T) {
	sched := newFakeScheduler()
	out := newFakeOutput(sched)

	m := NewModel()
	m.SetCountdown(true, 700, false)
	s := m.Snapshot()

	ran := 0
	RunCountdown(s, sched, out, func() { ran++ })
	sched.advance(5 * time.Second)

	counts := out.byKind("count")
	require.Len(t, counts, 3)
	assert.Equal(t, "3", counts[0].label)
	assert.Equal(t, "2", counts[1].label)
	assert.Equal(t, "1", counts[2].label)

	// Each digit ~700ms apart, test fires after the last step.
	assert.Equal(t, time.Duration(0), counts[0].at)
	assert.Equal(t, 700*time.Millisecond, counts[1].at)
	assert.Equal(t, 1400*time.Millisecond, counts[2].at)

	clears := out.byKind("clear")
	require.Len(t, clears, 1)
	assert.Equal(t, 2100*time.Millisecond, clears[0].at)
	assert.Equal(t, 1, ran)
}

func TestCountdownCueTonesAscend(t *testing.T) {
	sched := newFakeScheduler()
	out := newFakeOutput(sched)

	m := NewModel()
	m.SetCountdown(true, 300, true)

	RunCountdown(m.Snapshot(), sched, out, func() {})
	sched.advance(2 * time.Second)

	beeps := out.byKind("beep")
	require.Len(t, beeps, 3)
	assert.Equal(t, 600, beeps[0].freqHz)
	assert.Equal(t, 700, beeps[1].freqHz)
	assert.Equal(t, 800, beeps[2].freqHz)
	for _, b := range beeps {
		assert.Equal(t, CueDurMs, b.durMs)
		assert.Equal(t, CueVolume, b.volume)
	}
}

func TestCountdownWithoutCueTones(t *testing.T) {
	sched := newFakeScheduler()
	out := newFakeOutput(sched)

	m := NewModel()
	m.SetCountdown(true, 300, false)

	RunCountdown(m.Snapshot(), sched, out, func() {})
	sched.advance(2 * time.Second)

	assert.Empty(t, out.byKind("beep"))
	assert.Len(t, out.byKind("count"), 3)
}

func TestCountdownStepFloor(t *testing.T) {
	sched := newFakeScheduler()
	out := newFakeOutput(sched)

	m := NewModel()
	m.SetCountdown(true, 10, false) // below the floor

	RunCountdown(m.Snapshot(), sched, out, func() {})
	sched.advance(2 * time.Second)

	counts := out.byKind("count")
	require.Len(t, counts, 3)
	assert.Equal(t, time.Duration(MinStepMs)*time.Millisecond, counts[1].at)
}

func TestControllerSkipsCountdownWhenDisabled(t *testing.T) {
	sched := newFakeScheduler()
	out := newFakeOutput(sched)
	c := NewController(sched, out)

	c.Model().SetCountdown(false, 700, true)
	c.Model().SetDelayFrames(0)
	c.RunTest()

	assert.Empty(t, out.byKind("count"))
	assert.Len(t, out.pairEvents(), 2)
}

func TestControllerRunsCountdownBeforePair(t *testing.T) {
	sched := newFakeScheduler()
	out := newFakeOutput(sched)
	c := NewController(sched, out)

	c.Model().SetFPS(24)
	c.Model().SetCountdown(true, 500, false)
	c.Model().SetDelayFrames(12)
	c.RunTest()

	// Nothing from the pair yet, first digit is up.
	assert.Empty(t, out.pairEvents())
	assert.Len(t, out.byKind("count"), 1)

	sched.advance(10 * time.Second)

	counts := out.byKind("count")
	require.Len(t, counts, 3)
	events := out.pairEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "flash", events[0].kind)
	assert.Equal(t, 1500*time.Millisecond, events[0].at)
	assert.Equal(t, 2000*time.Millisecond, events[1].at)
}
