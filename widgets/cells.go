package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"monoseq/theme"
)

// RenderCell renders a single brightness cell
func RenderCell(t *theme.Theme, level uint8) string {
	if level == 0 {
		return lipgloss.NewStyle().Foreground(t.Muted()).Render("·")
	}
	return lipgloss.NewStyle().Foreground(t.Level(level)).Render("■")
}

// RenderFrame renders a full 16x8 brightness frame, row 0 (the control
// row) on top, with a blank line separating it from the musical rows.
func RenderFrame(t *theme.Theme, f *[8][16]uint8) string {
	var lines []string
	for y := 0; y < 8; y++ {
		var line strings.Builder
		for x := 0; x < 16; x++ {
			line.WriteString(RenderCell(t, f[y][x]))
			if x < 15 {
				line.WriteString(" ")
			}
		}
		lines = append(lines, line.String())
		if y == 0 {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(t *theme.Theme, sections []KeySection) string {
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent())
	descStyle := lipgloss.NewStyle().Foreground(t.Muted())
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, lipgloss.NewStyle().Foreground(t.FG()).Render(sec.Title))
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %s %s",
				keyStyle.Render(fmt.Sprintf("%-12s", k.Key)),
				descStyle.Render(k.Desc)))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
