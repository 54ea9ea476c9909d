package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/depthscraper/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorDimRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("88")),
	core.ColorDimGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	core.ColorDimYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
	core.ColorCyan:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorMagenta:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorWhite:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[start]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
