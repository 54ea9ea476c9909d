package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/depthscraper/internal/highscore"
)

// Sidebar layout constants
const (
	sidebarWidth    = 30 // Including the border
	sidebarMinWidth = 96 // Terminal width from which the sidebar is shown
)

var (
	sidebarTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sidebarDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sidebarOwnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	sidebarBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Width(sidebarWidth-2).
				Padding(0, 1)
)

// renderSidebar draws the leaderboard column shown next to the game.
func renderSidebar(entries []highscore.Entry) string {
	var b strings.Builder
	b.WriteString(sidebarTitleStyle.Render("High scores"))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(sidebarDimStyle.Render("No scores yet"))
		return sidebarBoxStyle.Render(b.String())
	}

	prevRank := 0
	for _, e := range entries {
		if prevRank > 0 && e.Rank > prevRank+1 {
			b.WriteString(sidebarDimStyle.Render("   ..."))
			b.WriteString("\n")
		}
		prevRank = e.Rank

		line := formatEntry(e)
		if e.Own {
			line = sidebarOwnStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return sidebarBoxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

// formatEntry renders one leaderboard row, e.g. "  1. alice       120".
func formatEntry(e highscore.Entry) string {
	name := []rune(e.Name)
	if len(name) > highscore.MaxNameLen {
		name = name[:highscore.MaxNameLen]
	}
	pad := strings.Repeat(" ", highscore.MaxNameLen-len(name))
	return fmt.Sprintf("%3d. %s%s %7d", e.Rank, string(name), pad, e.Score)
}
