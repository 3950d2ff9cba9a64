package timing

// Controller owns the model and runs tests against an Output through a
// Scheduler. It is free of any UI toolkit; the application wires the real
// scheduler and the Fyne/audio-backed output, tests wire fakes.
type Controller struct {
	model  *Model
	sched  Scheduler
	out    Output
	repeat repeater
}

// NewController builds a controller around fresh default settings.
func NewController(sched Scheduler, out Output) *Controller {
	return &Controller{model: NewModel(), sched: sched, out: out}
}

// Model exposes the settings for the UI's explicit getter/setter access.
func (c *Controller) Model() *Model {
	return c.model
}

// RunTest runs one test: the countdown pre-roll when enabled, then the
// flash/beep pair. Settings are snapshotted once at entry; changes made
// while events are in flight only affect the next invocation.
func (c *Controller) RunTest() {
	s := c.model.Snapshot()
	if s.CountdownOn {
		RunCountdown(s, c.sched, c.out, func() { RunEvents(s, c.sched, c.out) })
		return
	}
	RunEvents(s, c.sched, c.out)
}

// SetRepeat enables or disables the repeat loop. Enabling schedules the
// first tick one interval out; disabling cancels the pending tick.
func (c *Controller) SetRepeat(on bool) {
	if on {
		c.repeat.Start(
			func() int { return c.model.Snapshot().RepeatIntervalMs },
			c.RunTest,
			c.sched,
			c.out,
		)
		return
	}
	c.repeat.Stop(c.out)
}
