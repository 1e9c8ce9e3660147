package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/lifeclock/internal/calculation"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/milestone"
	"github.com/rgehrsitz/lifeclock/internal/output"
	"github.com/rgehrsitz/lifeclock/internal/tui/components"
	"github.com/rgehrsitz/lifeclock/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{
		m.renderTitleBar(),
		m.renderCards(),
		components.NewProgressBar(m.summary.PercentLived).WithWidth(min(40, max(10, m.width-12))).Render(),
	}

	if m.err != nil {
		sections = append(sections, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	} else {
		sections = append(sections,
			tuistyles.TitleStyle.Render(calculation.GranularityLabel(m.granularity)+" of your life"),
			m.grid.View(),
			output.TimelineFooter(m.timeline),
		)
	}

	if line := m.renderMilestones(); line != "" {
		sections = append(sections, line)
	}
	if m.opts.Outlook.ShowMotivational {
		sections = append(sections, tuistyles.TaglineStyle.Render(milestone.Tagline(m.tagline)))
	}
	sections = append(sections, tuistyles.StatusBarStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	return tuistyles.TitleStyle.Render("LIFE CLOCK") + "  " +
		tuistyles.SubtitleStyle.Render(m.now.Format("Monday, January 2, 2006 15:04:05"))
}

func clockValue(b domain.TimeBreakdown) string {
	return fmt.Sprintf("%dy %dm %dd %s", b.Years, b.Months, b.Days,
		calculation.FormatClock(b.Hours, b.Minutes, b.Seconds))
}

// renderCards shows lived, remaining and expectancy side by side when the
// terminal is wide enough.
func (m Model) renderCards() string {
	s := m.summary
	lived := components.NewMetricCard("Time lived", clockValue(s.Lived)).
		WithDescription("since " + s.BirthDate.Format("Jan 2, 2006"))

	var remaining *components.MetricCard
	if s.OverExpectancy {
		remaining = components.NewMetricCard("Bonus time", "🎉 Beyond expectations").
			WithDescription("Every day is a bonus.")
	} else {
		remaining = components.NewMetricCard("Time remaining", clockValue(s.Remaining)).
			WithDescription("until " + s.ExpectedEnd.Format("Jan 2, 2006"))
	}

	expectancy := components.NewMetricCard("Life expectancy", fmt.Sprintf("%.1f years", s.LifeExpectancy)).
		WithDescription(s.Source.Description)

	columns := 3
	if m.width < 96 {
		columns = 1
	}
	return components.MetricGrid([]*components.MetricCard{lived, remaining, expectancy}, columns)
}

func (m Model) renderMilestones() string {
	if len(m.milestones) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.milestones))
	for _, ms := range m.milestones {
		parts = append(parts, fmt.Sprintf("%s %d %s", ms.Icon, ms.Count, ms.Label))
	}
	return strings.Join(parts, "  ")
}

func renderGrid(tl domain.TimelineData) string {
	return output.RenderGrid(tl)
}
