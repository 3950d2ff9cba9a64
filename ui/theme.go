package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// SyncTheme pins the application to the dark variant so the flash panel
// sits on a dark surface regardless of the system setting.
type SyncTheme struct {
	fyne.Theme
}

// NewSyncTheme creates a new instance of the theme.
func NewSyncTheme() fyne.Theme {
	return &SyncTheme{Theme: theme.DefaultTheme()}
}

// Color always resolves against the dark variant.
func (t *SyncTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, theme.VariantDark)
}
