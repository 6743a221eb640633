package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-jukebox/theme"
)

// RenderLCD draws the character display inside a bezel. Lines are padded
// to width so the panel keeps its size while text changes.
func RenderLCD(lines []string, width int, th *theme.Theme) string {
	panel := lipgloss.NewStyle().
		Foreground(th.Ink()).
		Background(th.Backlight()).
		Padding(0, 1)

	rows := make([]string, len(lines))
	for i, line := range lines {
		rows[i] = panel.Render(padRight(line, width))
	}

	bezel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Muted())
	return bezel.Render(strings.Join(rows, "\n"))
}

// RenderFatal renders a status line for a halted jukebox
func RenderFatal(err error, th *theme.Theme) string {
	style := lipgloss.NewStyle().Foreground(th.Warning()).Bold(true)
	return style.Render(fmt.Sprintf("halted: %v", err))
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
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

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
