package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/lifeclock/internal/tui/tuistyles"
)

// ProgressBar draws how much of a life has been lived.
type ProgressBar struct {
	Percent     float64
	Width       int
	Label       string
	ShowPercent bool
}

// NewProgressBar creates a 40 column bar for percent (0-100).
func NewProgressBar(percent float64) *ProgressBar {
	return &ProgressBar{
		Percent:     percent,
		Width:       40,
		ShowPercent: true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Filled returns the number of filled cells, clamped to the bar width.
func (p *ProgressBar) Filled() int {
	filled := int(float64(p.Width) * p.Percent / 100)
	return max(0, min(filled, p.Width))
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(p.Label))
		content.WriteString("\n")
	}

	filled := p.Filled()
	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty := p.Width - filled; empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("]")

	if p.ShowPercent {
		percentStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorPrimary).
			Bold(true)
		content.WriteString(" ")
		content.WriteString(percentStyle.Render(fmt.Sprintf("%.1f%%", p.Percent)))
	}

	return content.String()
}
