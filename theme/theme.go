package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBacklight = 0.0  // LCD background
	RoleMuted     = 0.25 // frame, help text
	RoleInk       = 0.5  // LCD characters
	RoleAccent    = 0.75 // header
	RoleWarning   = 1.0  // fatal errors
)

// Style helpers

func (t *Theme) Backlight() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBacklight))
}

func (t *Theme) Ink() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleInk))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
