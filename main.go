package main

import (
	"AVSync/ui"

	"fyne.io/fyne/v2/app"
)

func main() {
	fyneApp := app.New()
	fyneApp.Settings().SetTheme(ui.NewSyncTheme())

	a := NewAppManager()

	w := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w

	w.SetOnClosed(a.Shutdown)

	a.RefreshDisplay()
	a.WarnIfNoAudio()

	w.ShowAndRun()
}
