package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorStyles maps core.Color to lipgloss styles. Tile colors are bold so
// values stand out from the grid lines.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWhite:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
	core.ColorYellow:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	core.ColorOrange:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
	core.ColorRed:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	core.ColorBrightRed:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	core.ColorMagenta:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
	core.ColorCyan:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
	core.ColorGreen:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
