// Package tuistyles holds the colour palette and lipgloss styles shared by
// the TUI and the console formatter.
package tuistyles

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary    = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#8B7FFF"}
	ColorAccent     = lipgloss.AdaptiveColor{Light: "#D9480F", Dark: "#FF8C42"}
	ColorSuccess    = lipgloss.AdaptiveColor{Light: "#2B8A3E", Dark: "#51CF66"}
	ColorDanger     = lipgloss.AdaptiveColor{Light: "#C92A2A", Dark: "#FF6B6B"}
	ColorInfo       = lipgloss.AdaptiveColor{Light: "#1971C2", Dark: "#4DABF7"}
	ColorForeground = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F1F3F5"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#868E96", Dark: "#868E96"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#CED4DA", Dark: "#495057"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(18)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Bold(true)

	CelebrateStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TaglineStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Bold(true)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)
)

// Grid cell glyphs and styles, keyed by TimelineUnit.State().
var (
	CellLived    = lipgloss.NewStyle().Foreground(ColorPrimary)
	CellCurrent  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	CellFuture   = lipgloss.NewStyle().Foreground(ColorBorder)
	CellPreBirth = lipgloss.NewStyle()
)

// Cell returns the glyph and style for a unit state.
func Cell(state string) (string, lipgloss.Style) {
	switch state {
	case "lived":
		return "■", CellLived
	case "current":
		return "◆", CellCurrent
	case "pre-birth":
		return " ", CellPreBirth
	default:
		return "□", CellFuture
	}
}
