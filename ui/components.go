package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styledPad pads a styled string to the given visual width using spaces.
// Unlike fmt.Sprintf("%-Xs"), this accounts for ANSI escape codes.
func styledPad(styled string, width int) string {
	visW := lipgloss.Width(styled)
	if visW >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-visW)
}

// boxTop renders the top border of a rounded box.
func boxTop(innerW int) string {
	return " " + dimStyle.Render("╭"+strings.Repeat("─", innerW+2)+"╮")
}

// boxBot renders the bottom border of a rounded box.
func boxBot(innerW int) string {
	return " " + dimStyle.Render("╰"+strings.Repeat("─", innerW+2)+"╯")
}

// boxMid renders a horizontal divider inside a box.
func boxMid(innerW int) string {
	return " " + dimStyle.Render("├"+strings.Repeat("─", innerW+2)+"┤")
}

// boxRow renders one content line inside a box, padded to innerW.
func boxRow(content string, innerW int) string {
	visW := lipgloss.Width(content)
	pad := innerW - visW
	if pad < 0 {
		pad = 0
	}
	return " " + dimStyle.Render("│") + " " + content + strings.Repeat(" ", pad) + " " + dimStyle.Render("│")
}

// boxSection renders a titled section inside a bordered box.
func boxSection(title string, lines []string, innerW int) string {
	var sb strings.Builder
	sb.WriteString(boxTop(innerW) + "\n")
	sb.WriteString(boxRow(headerStyle.Render(title), innerW) + "\n")
	sb.WriteString(boxMid(innerW) + "\n")
	for _, line := range lines {
		sb.WriteString(boxRow(line, innerW) + "\n")
	}
	sb.WriteString(boxBot(innerW) + "\n")
	return sb.String()
}

// pageInnerW computes box inner width from terminal width.
func pageInnerW(termWidth int) int {
	w := termWidth - 6
	if w < 60 {
		w = 60
	}
	return w
}

// metricBar renders a value bar scaled so the "poor" threshold sits at
// the right edge.
func metricBar(value, poor float64, width int) string {
	if width < 1 {
		width = 10
	}
	if value < 0 {
		value = 0
	}
	ratio := value / poor
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	b := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case ratio >= 1:
		return critStyle.Render(b)
	case ratio >= 0.625:
		return warnStyle.Render(b)
	default:
		return okStyle.Render(b)
	}
}

// sparkline renders a single-line chart of the series.
func sparkline(data []float64, width int, minVal, maxVal float64) string {
	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}

	var resampled []float64
	if len(data) <= width {
		resampled = data
	} else {
		resampled = make([]float64, width)
		for i := 0; i < width; i++ {
			srcIdx := i * len(data) / width
			if srcIdx >= len(data) {
				srcIdx = len(data) - 1
			}
			resampled[i] = data[srcIdx]
		}
	}

	var sb strings.Builder
	for _, v := range resampled {
		ratio := (v - minVal) / (maxVal - minVal)
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		idx := int(ratio * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}

		switch {
		case ratio > 0.8:
			sb.WriteString(critStyle.Render(string(blocks[idx])))
		case ratio > 0.4:
			sb.WriteString(warnStyle.Render(string(blocks[idx])))
		default:
			sb.WriteString(okStyle.Render(string(blocks[idx])))
		}
	}

	last := float64(0)
	if len(resampled) > 0 {
		last = resampled[len(resampled)-1]
	}
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" now=%.1f", last)))

	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		if width > 3 {
			return s[:width-3] + "..."
		}
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncate shortens s to maxLen characters with ellipsis if needed.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
