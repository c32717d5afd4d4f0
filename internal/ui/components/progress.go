package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Stohl/tsp-skolan-sub000/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// PointsBar is a bar showing points out of max, labeled "points/max".
func PointsBar(points, max, width int) ProgressBar {
	pct := 0.0
	if max > 0 {
		pct = float64(points) / float64(max)
	}
	return NewProgressBar(fmt.Sprintf("%d/%d", points, max), pct, false, width)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(4, p.Width-lipgloss.Width(b.String())-percentWidth)

	filled := min(barWidth, max(0, int(float64(barWidth)*p.Percent)))
	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}
	return b.String()
}
