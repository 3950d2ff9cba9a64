package ui

import (
	"AVSync/control"
	"AVSync/i18n"
	"AVSync/timing"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// App is the interface the UI expects from the application side.
type App interface {
	Model() *timing.Model
	EnqueueCommand(cmd control.Command)
	HandleKeyRune(rune)
	HandleKey(*fyne.KeyEvent)
	RefreshDisplay()
	SetDelayLabel(*widget.Label)
	SetNextLabel(*widget.Label)
	SetDelaySlider(*widget.Slider)
	SetFlashPanel(*FlashPanel)
}

// Flash panel colors, matching the tool's traditional dark/green scheme.
var (
	flashBGNormal = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	flashBGActive = color.NRGBA{R: 0x33, G: 0xcc, B: 0x33, A: 0xff}
)

const (
	centerTextSize   float32 = 36.0
	windowWidth      float32 = 640
	windowHeight     float32 = 560
	flashPanelHeight float32 = 240
)

// FlashPanel is the large display area: a dark rectangle that flips green
// during a flash, a big centered text (Ready / FLASH / countdown digit) and
// the status block in the top-left corner. All mutators are safe to call
// from any goroutine; they wrap themselves in fyne.Do.
type FlashPanel struct {
	bg     *canvas.Rectangle
	center *canvas.Text
	info   *widget.Label
	root   fyne.CanvasObject
}

// NewFlashPanel builds the display area showing the initial Ready text.
func NewFlashPanel() *FlashPanel {
	p := &FlashPanel{}

	p.bg = canvas.NewRectangle(flashBGNormal)
	p.bg.SetMinSize(fyne.NewSize(0, flashPanelHeight))

	p.center = canvas.NewText(i18n.T("Ready"), color.White)
	p.center.TextSize = centerTextSize
	p.center.TextStyle.Bold = true
	p.center.Alignment = fyne.TextAlignCenter

	p.info = widget.NewLabel("")
	p.info.Importance = widget.LowImportance
	p.info.TextStyle.Monospace = true

	infoWrapped := container.NewVBox(p.info, layout.NewSpacer())
	centered := container.New(layout.NewCenterLayout(), p.center)
	p.root = container.NewStack(p.bg, infoWrapped, centered)
	return p
}

// CanvasObject returns the root object for layout.
func (p *FlashPanel) CanvasObject() fyne.CanvasObject {
	return p.root
}

// SetFlash lights or clears the panel.
func (p *FlashPanel) SetFlash(on bool) {
	fyne.Do(func() {
		if on {
			p.bg.FillColor = flashBGActive
			p.center.Text = "FLASH"
		} else {
			p.bg.FillColor = flashBGNormal
			p.center.Text = ""
		}
		p.bg.Refresh()
		p.center.Refresh()
	})
}

// SetCenterText replaces the big centered text without touching the
// background (used for countdown digits).
func (p *FlashPanel) SetCenterText(text string) {
	fyne.Do(func() {
		p.bg.FillColor = flashBGNormal
		p.center.Text = text
		p.bg.Refresh()
		p.center.Refresh()
	})
}

// SetInfoText replaces the status block.
func (p *FlashPanel) SetInfoText(text string) {
	fyne.Do(func() {
		p.info.SetText(text)
	})
}

// commitFloat wires an entry so every parseable edit is pushed through set.
func commitFloat(e *widget.Entry, set func(float64)) {
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			set(v)
		}
	}
}

// commitInt does the same for integer entries.
func commitInt(e *widget.Entry, set func(int)) {
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			set(v)
		}
	}
}

func newNumEntry(text string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(text)
	return e
}

func buildTimingRow(a App) fyne.CanvasObject {
	m := a.Model()
	s := m.Snapshot()

	fpsEntry := widget.NewSelectEntry([]string{
		"23.976", "24", "25", "29.97", "30", "48", "50", "59.94", "60",
	})
	fpsEntry.SetText(strconv.FormatFloat(s.FPS, 'f', -1, 64))
	fpsEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			m.SetFPS(v)
			a.RefreshDisplay()
		}
	}

	baseEntry := newNumEntry(strconv.FormatFloat(s.BaseFrames, 'f', 2, 64))
	commitFloat(baseEntry, func(v float64) {
		m.SetBaseFrames(v)
		a.RefreshDisplay()
	})

	roundedEntry := newNumEntry(strconv.Itoa(s.RoundedFrames))
	commitInt(roundedEntry, func(v int) {
		m.SetRoundedFrames(v)
		a.RefreshDisplay()
	})

	targetSelect := widget.NewSelect([]string{"Audio", "Visual"}, func(sel string) {
		if sel == "Visual" {
			m.SetTarget(timing.TargetVisual)
		} else {
			m.SetTarget(timing.TargetAudio)
		}
		a.RefreshDisplay()
	})
	targetSelect.SetSelected("Audio")

	delaySlider := widget.NewSlider(-timing.DelayFramesLimit, timing.DelayFramesLimit)
	delaySlider.Step = 0.25
	delaySlider.Value = s.DelayFrames
	delaySlider.OnChanged = func(v float64) {
		m.SetDelayFrames(v)
		a.RefreshDisplay()
	}
	a.SetDelaySlider(delaySlider)

	delayLabel := widget.NewLabel(s.DelaySummary())
	a.SetDelayLabel(delayLabel)

	row1 := container.NewHBox(
		widget.NewLabel("FPS"), fpsEntry,
		widget.NewLabel("Base (head→gate) frames"), baseEntry,
		widget.NewLabel("Rounded"), roundedEntry,
	)
	row2 := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Delay target"), targetSelect, widget.NewLabel("Delay (frames)")),
		delayLabel,
		delaySlider,
	)
	return container.NewVBox(row1, row2)
}

func buildToneRow(a App) fyne.CanvasObject {
	m := a.Model()
	s := m.Snapshot()

	freqEntry := newNumEntry(strconv.Itoa(s.ToneFreqHz))
	durEntry := newNumEntry(strconv.Itoa(s.ToneDurMs))
	commitTone := func(int) {
		freq, ferr := strconv.Atoi(freqEntry.Text)
		dur, derr := strconv.Atoi(durEntry.Text)
		if ferr == nil && derr == nil {
			m.SetTone(freq, dur)
		}
	}
	commitInt(freqEntry, commitTone)
	commitInt(durEntry, commitTone)

	flashEntry := newNumEntry(strconv.Itoa(s.FlashDurMs))
	commitInt(flashEntry, m.SetFlashDurMs)

	return container.NewHBox(
		widget.NewLabel("Tone (Hz)"), freqEntry,
		widget.NewLabel("Tone length (ms)"), durEntry,
		widget.NewLabel("Flash length (ms)"), flashEntry,
	)
}

func buildCountdownRow(a App) fyne.CanvasObject {
	m := a.Model()
	s := m.Snapshot()

	stepEntry := newNumEntry(strconv.Itoa(s.CountdownStepMs))
	enableCheck := widget.NewCheck(i18n.T("Countdown 3-2-1 before test"), nil)
	beepsCheck := widget.NewCheck(i18n.T("Beep on each count"), nil)
	beepsCheck.SetChecked(s.CountdownBeeps)

	commit := func() {
		step := s.CountdownStepMs
		if v, err := strconv.Atoi(stepEntry.Text); err == nil {
			step = v
		}
		m.SetCountdown(enableCheck.Checked, step, beepsCheck.Checked)
	}
	enableCheck.OnChanged = func(bool) { commit() }
	beepsCheck.OnChanged = func(bool) { commit() }
	stepEntry.OnChanged = func(string) { commit() }

	return container.NewHBox(
		enableCheck,
		widget.NewLabel("Step (ms)"), stepEntry,
		beepsCheck,
	)
}

func buildRepeatRow(a App) fyne.CanvasObject {
	m := a.Model()
	s := m.Snapshot()

	intervalEntry := newNumEntry(strconv.Itoa(s.RepeatIntervalMs))
	commitInt(intervalEntry, m.SetRepeatIntervalMs)

	nextLabel := widget.NewLabel("")
	a.SetNextLabel(nextLabel)

	repeatCheck := widget.NewCheck(i18n.T("Repeat test"), func(on bool) {
		a.EnqueueCommand(control.Command{Type: control.CmdRepeat, On: on})
	})

	return container.NewHBox(
		repeatCheck,
		widget.NewLabel("Interval (ms)"), intervalEntry,
		nextLabel,
	)
}

func buildFooter(a App, w fyne.Window) fyne.CanvasObject {
	testButton := widget.NewButton(i18n.T("Test (Space)"), func() {
		a.EnqueueCommand(control.Command{Type: control.CmdTest})
		w.Canvas().Focus(nil)
	})
	quitButton := widget.NewButton(i18n.T("Quit"), w.Close)

	return container.NewHBox(testButton, layout.NewSpacer(), quitButton)
}

// CreateMainWindow builds the single application window.
func CreateMainWindow(a App, fyneApp fyne.App) fyne.Window {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "AV Sync Helper"
	}
	w := fyneApp.NewWindow(title)

	panel := NewFlashPanel()
	a.SetFlashPanel(panel)

	content := container.NewBorder(
		container.NewVBox(
			buildTimingRow(a),
			buildToneRow(a),
			buildCountdownRow(a),
			buildRepeatRow(a),
		),
		buildFooter(a, w),
		nil, nil,
		panel.CanvasObject(),
	)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)
	w.Canvas().SetOnTypedKey(a.HandleKey)

	w.SetContent(content)
	w.Resize(fyne.NewSize(windowWidth, windowHeight))
	return w
}
