package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pkt.systems/simry/internal/appconfig"
)

type styles struct {
	bar         lipgloss.Style
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	status      lipgloss.Style
	statusErr   lipgloss.Style
	prompt      lipgloss.Style
}

func newStyles(theme appconfig.ThemeConfig) styles {
	barBG := lipgloss.Color(theme.TabBarBG)
	return styles{
		bar: lipgloss.NewStyle().Background(barBG),
		activeTab: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.TabActiveBG)).
			Foreground(lipgloss.Color(theme.TabActiveFG)).
			Bold(true).
			Padding(0, 1),
		inactiveTab: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.TabInactiveBG)).
			Foreground(lipgloss.Color(theme.TabInactiveFG)).
			Padding(0, 1),
		status:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.StatusFG)),
		statusErr: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ErrorFG)).Bold(true),
		prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TabActiveBG)).Bold(true),
	}
}

// formatTabLabel shortens a label for drawing. The stored label is untouched.
func formatTabLabel(label string, max int, suffix string) string {
	if max <= 0 {
		return label
	}
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	cut := max - len([]rune(suffix))
	if cut < 1 {
		return string(runes[:max])
	}
	return string(runes[:cut]) + suffix
}
