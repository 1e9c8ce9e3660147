package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/lifeclock/internal/calculation"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/tui/components"
	"github.com/rgehrsitz/lifeclock/internal/tui/tuistyles"
)

// ConsoleFormatter renders a human-readable report with lipgloss styling.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var sections []string
	if r.Clock != nil {
		sections = append(sections, RenderClock(*r.Clock))
	}
	for _, tl := range r.Timelines {
		sections = append(sections, RenderTimeline(tl))
	}
	if len(r.Milestones) > 0 {
		sections = append(sections, RenderMilestones(r.Milestones))
	}
	if r.Tagline != "" {
		sections = append(sections, tuistyles.TaglineStyle.Render(r.Tagline))
	}
	if len(r.Events) > 0 {
		sections = append(sections, renderEvents(r.Events))
	}
	return []byte(strings.Join(sections, "\n\n") + "\n"), nil
}

func row(label, value string) string {
	return tuistyles.LabelStyle.Render(label) + tuistyles.ValueStyle.Render(value)
}

func breakdown(b domain.TimeBreakdown) string {
	text := calculation.FormatTimeLived(b)
	if text == "" {
		text = "0 days"
	}
	return text + "  " + calculation.FormatClock(b.Hours, b.Minutes, b.Seconds)
}

// RenderClock renders the elapsed/remaining summary.
func RenderClock(c ClockSummary) string {
	lines := []string{
		tuistyles.TitleStyle.Render("LIFE CLOCK"),
		row("Born", c.BirthDate.Format("January 2, 2006")),
		row("Life expectancy", fmt.Sprintf("%.1f years (%s: %s)", c.LifeExpectancy, c.Source.DatasetName, c.Source.Description)),
		row("Expected until", c.ExpectedEnd.Format("January 2, 2006")),
		row("Time lived", breakdown(c.Lived)),
	}
	if c.OverExpectancy {
		lines = append(lines, tuistyles.CelebrateStyle.Render("🎉 You are living beyond expectations! Every day is a bonus."))
	} else {
		lines = append(lines, row("Time remaining", breakdown(c.Remaining)))
	}
	lines = append(lines, row("Progress", components.NewProgressBar(c.PercentLived).Render()))
	return strings.Join(lines, "\n")
}

// RenderTimeline draws the grid one row per line followed by its counters.
func RenderTimeline(tl domain.TimelineData) string {
	var sb strings.Builder
	sb.WriteString(tuistyles.TitleStyle.Render(calculation.GranularityLabel(tl.Granularity) + " of your life"))
	sb.WriteString("\n")

	sb.WriteString(RenderGrid(tl))
	sb.WriteString("\n")
	sb.WriteString(TimelineFooter(tl))
	return sb.String()
}

// RenderGrid draws only the cells, one grid row per line.
func RenderGrid(tl domain.TimelineData) string {
	var sb strings.Builder
	for i, u := range tl.Units {
		glyph, style := tuistyles.Cell(u.State())
		sb.WriteString(style.Render(glyph))
		if (i+1)%tl.Layout.Columns == 0 && i != len(tl.Units)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// TimelineFooter summarises the counters and the current unit.
func TimelineFooter(tl domain.TimelineData) string {
	l := tl.Layout
	footer := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d %s lived • %d %s remaining • %.1f%% complete",
		l.LivedUnits, calculation.UnitName(tl.Granularity, l.LivedUnits),
		l.RemainingUnits, calculation.UnitName(tl.Granularity, l.RemainingUnits),
		l.PercentComplete))
	if l.CurrentUnit >= 0 && l.CurrentUnit < len(tl.Units) {
		footer += "\n" + row("Now", tl.Units[l.CurrentUnit].DetailsText)
	}
	return footer
}

// RenderMilestones lists one milestone per line.
func RenderMilestones(ms []domain.Milestone) string {
	lines := []string{tuistyles.TitleStyle.Render("WHAT'S AHEAD")}
	for _, m := range ms {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			m.Icon,
			tuistyles.LabelStyle.Render(m.Label),
			tuistyles.ValueStyle.Render(m.Description)))
	}
	return strings.Join(lines, "\n")
}

func renderEvents(events []CalendarEvent) string {
	lines := []string{tuistyles.TitleStyle.Render("UPCOMING")}
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s  %s %s", e.Date.Format("2006-01-02"), e.Icon, e.Summary))
	}
	return strings.Join(lines, "\n")
}
