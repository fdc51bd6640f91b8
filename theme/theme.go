package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps grid brightness and UI roles onto a palette.
type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted  = 0.1 // dim cells, separators
	RoleFG     = 0.6 // body text
	RoleAccent = 1.0 // highlights, active values
)

// Level returns the terminal color for a grid brightness value 0-15.
func (t *Theme) Level(level uint8) lipgloss.Color {
	if level > 15 {
		level = 15
	}
	return rgbToLipgloss(t.Palette.Lookup(float64(level) / 15))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
