// Package main contains the application wiring and the AppManager which
// coordinates the timing core, audio and the UI. This file centralizes the
// shared application state and the command loop used to serialize test and
// settings mutations.
//
// Maintenance notes / tips:
//   - Concurrency model: the application uses a single command-loop
//     goroutine (see `commandLoop`) to serialize Test/Nudge/Repeat
//     operations coming from the UI. Delayed callbacks (second test event,
//     flash-off, countdown steps, repeat ticks) run on timer goroutines via
//     timing.TimerScheduler; everything that touches a widget re-enters the
//     UI thread through fyne.Do inside the FlashPanel/label helpers.
//   - `cmdCh` is a buffered channel used to enqueue commands from the UI.
//     The current implementation drops commands when the channel stays full
//     to avoid blocking the UI.
package main

import (
	"AVSync/audio"
	"AVSync/control"
	"AVSync/i18n"
	"AVSync/timing"
	"AVSync/ui"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// AppManager is the main application struct, holding all state. It
// implements timing.Output by bridging core events to the flash panel and
// the audio player.
type AppManager struct {
	mainWindow fyne.Window
	controller *timing.Controller
	player     *audio.Player
	sched      timing.Scheduler

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc

	delayLabel  *widget.Label
	nextLabel   *widget.Label
	delaySlider *widget.Slider
	flashPanel  *ui.FlashPanel

	audioWarnOnce sync.Once
}

// NewAppManager creates a new application manager.
func NewAppManager() *AppManager {
	a := &AppManager{
		player: audio.NewPlayer(),
		sched:  timing.TimerScheduler{},
	}
	a.controller = timing.NewController(a.sched, a)

	a.cmdCh = make(chan control.Command, 64)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	return a
}

// Model exposes the settings for the UI's explicit getter/setter access.
func (a *AppManager) Model() *timing.Model {
	return a.controller.Model()
}

// EnqueueCommand posts a command to the internal command loop. If the
// channel stays full for the short timeout, the command is dropped and
// logged rather than blocking the UI.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping command")
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			switch cmd.Type {
			case control.CmdTest:
				a.controller.RunTest()
			case control.CmdNudge:
				a.controller.Model().NudgeDelay(cmd.Delta)
				a.RefreshDisplay()
			case control.CmdRepeat:
				a.controller.SetRepeat(cmd.On)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- nil:
				default:
				}
			}
		}
	}
}

// FlashOn lights the flash panel and schedules the matching flash-off.
func (a *AppManager) FlashOn(durMs int) {
	a.flashPanel.SetFlash(true)
	a.sched.Schedule(time.Duration(durMs)*time.Millisecond, func() {
		a.flashPanel.SetFlash(false)
	})
}

// Beep plays a tone without blocking. A failed beep never cancels the
// flash side of a test; it is logged, warned about once, and dropped.
func (a *AppManager) Beep(freqHz, durMs int, volume float64) {
	if err := a.player.PlayTone(freqHz, durMs, volume); err != nil {
		log.Printf("Beep failed: %v", err)
		a.warnNoAudio(err)
	}
}

// ShowCount displays a countdown digit.
func (a *AppManager) ShowCount(label string) {
	a.flashPanel.SetCenterText(label)
}

// ClearCount removes the countdown digit.
func (a *AppManager) ClearCount() {
	a.flashPanel.SetCenterText("")
}

// SetNextTickNote updates the repeat hint label.
func (a *AppManager) SetNextTickNote(text string) {
	if a.nextLabel == nil {
		return
	}
	fyne.Do(func() {
		a.nextLabel.SetText(text)
	})
}

// RefreshDisplay recomputes the derived labels from the current settings.
func (a *AppManager) RefreshDisplay() {
	s := a.Model().Snapshot()
	if a.flashPanel != nil {
		a.flashPanel.SetInfoText(s.InfoText())
	}
	fyne.Do(func() {
		if a.delayLabel != nil {
			a.delayLabel.SetText(s.DelaySummary())
		}
		if a.delaySlider != nil && a.delaySlider.Value != s.DelayFrames {
			a.delaySlider.SetValue(s.DelayFrames)
		}
	})
}

// HandleKeyRune handles character key presses: Space triggers a test.
func (a *AppManager) HandleKeyRune(r rune) {
	if r == ' ' {
		a.EnqueueCommand(control.Command{Type: control.CmdTest})
	}
}

// HandleKey handles the arrow-key delay nudges.
func (a *AppManager) HandleKey(ev *fyne.KeyEvent) {
	var delta float64
	switch ev.Name {
	case fyne.KeyLeft:
		delta = -0.25
	case fyne.KeyRight:
		delta = 0.25
	case fyne.KeyUp:
		delta = 1.0
	case fyne.KeyDown:
		delta = -1.0
	default:
		return
	}
	a.EnqueueCommand(control.Command{Type: control.CmdNudge, Delta: delta})
}

// WarnIfNoAudio surfaces the startup warning when the speaker failed to
// initialize. The rest of the tool stays usable for visual-only testing.
func (a *AppManager) WarnIfNoAudio() {
	if a.player.Available() {
		return
	}
	err := a.player.Err()
	if err == nil {
		err = errors.New("audio backend unavailable")
	}
	a.warnNoAudio(err)
}

// warnNoAudio shows the audio warning dialog at most once per process.
func (a *AppManager) warnNoAudio(err error) {
	a.audioWarnOnce.Do(func() {
		log.Printf("Audio unavailable: %v", err)
		if a.mainWindow == nil {
			return
		}
		fyne.Do(func() {
			dialog.ShowInformation(
				i18n.T("Audio backend not found"),
				"Couldn't play audio; tests will run visual-only.\n\n"+
					"Check that an output device is present and not held\n"+
					"exclusively by another application, then restart.",
				a.mainWindow,
			)
		})
	})
}

// SetDelayLabel sets the delay summary label widget.
func (a *AppManager) SetDelayLabel(l *widget.Label) {
	a.delayLabel = l
}

// SetNextLabel sets the repeat hint label widget.
func (a *AppManager) SetNextLabel(l *widget.Label) {
	a.nextLabel = l
}

// SetDelaySlider sets the delay slider widget.
func (a *AppManager) SetDelaySlider(s *widget.Slider) {
	a.delaySlider = s
}

// SetFlashPanel sets the flash panel.
func (a *AppManager) SetFlashPanel(p *ui.FlashPanel) {
	a.flashPanel = p
}

// Shutdown stops the command loop and the repeat timer, if running.
func (a *AppManager) Shutdown() {
	a.controller.SetRepeat(false)
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
}
