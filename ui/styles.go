package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/webtopd/webtop/model"
)

var (
	// Colors
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorOrange  = lipgloss.Color("#FFB86C")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	valueStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	headerStyle = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle    = lipgloss.NewStyle().Foreground(colorGray)
	orangeStyle = lipgloss.NewStyle().Foreground(colorOrange)
)

func severityStyle(sev string) lipgloss.Style {
	switch sev {
	case "high":
		return critStyle
	case "medium":
		return warnStyle
	default:
		return orangeStyle
	}
}

func ratingStyle(r model.Rating) lipgloss.Style {
	switch r {
	case model.RatingGood:
		return okStyle
	case model.RatingNeedsWork:
		return warnStyle
	case model.RatingPoor:
		return critStyle
	}
	return dimStyle
}

func healthBadge(h model.HealthLevel) string {
	switch h {
	case model.HealthGood:
		return okStyle.Render("GOOD")
	case model.HealthNeedsWork:
		return warnStyle.Render("NEEDS IMPROVEMENT")
	case model.HealthPoor:
		return critStyle.Render("POOR")
	}
	return dimStyle.Render("UNKNOWN")
}
