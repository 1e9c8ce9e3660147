package output

import (
	"sort"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/calculation"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/milestone"
)

// ClockSummary is the elapsed/remaining view of one profile at one instant.
type ClockSummary struct {
	BirthDate      time.Time                   `json:"birth_date"`
	Now            time.Time                   `json:"now"`
	LifeExpectancy float64                     `json:"life_expectancy"`
	Source         domain.LifeExpectancySource `json:"source"`
	ExpectedEnd    time.Time                   `json:"expected_end"`
	Lived          domain.TimeBreakdown        `json:"lived"`
	Remaining      domain.TimeBreakdown        `json:"remaining"`
	PercentLived   float64                     `json:"percent_lived"`
	OverExpectancy bool                        `json:"over_expectancy"`
}

// NewClockSummary computes a summary from a resolved life expectancy.
func NewClockSummary(birth, now time.Time, result domain.LifeExpectancyResult) ClockSummary {
	return ClockSummary{
		BirthDate:      birth,
		Now:            now,
		LifeExpectancy: result.Years,
		Source:         result.Source,
		ExpectedEnd:    calculation.ExpectedEndDate(birth, result.Years),
		Lived:          calculation.TimeLivedSince(birth, now),
		Remaining:      calculation.TimeRemainingUntil(birth, result.Years, now),
		PercentLived:   calculation.PercentLived(birth, result.Years, now),
		OverExpectancy: calculation.IsOverLifeExpectancy(birth, result.Years, now),
	}
}

// CalendarEvent is a single all-day entry of the exported calendar.
type CalendarEvent struct {
	UID     string    `json:"uid"`
	Date    time.Time `json:"date"`
	Summary string    `json:"summary"`
	Icon    string    `json:"icon,omitempty"`
}

// BuildEvents lists remaining birthdays and occurrences of the selected
// holidays between now and end, sorted by date.
func BuildEvents(counter *milestone.Counter, birth, now, end time.Time, holidays []domain.HolidayDefinition) []CalendarEvent {
	var events []CalendarEvent
	for _, d := range milestone.BirthdayDates(birth, now, end) {
		age := d.Year() - birth.Year()
		events = append(events, CalendarEvent{
			UID:     "birthday-" + d.Format("2006"),
			Date:    d,
			Summary: "Birthday: turning " + itoa(age),
			Icon:    "🎂",
		})
	}
	for _, h := range holidays {
		for _, d := range counter.HolidayDates(h, now, end) {
			events = append(events, CalendarEvent{
				UID:     h.ID + "-" + d.Format("2006"),
				Date:    d,
				Summary: h.Name,
				Icon:    h.Icon,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events
}

// Report bundles whatever a command wants rendered. Formatters render the
// sections that are set and skip the rest.
type Report struct {
	Clock      *ClockSummary         `json:"clock,omitempty"`
	Timelines  []domain.TimelineData `json:"timelines,omitempty"`
	Milestones []domain.Milestone    `json:"milestones,omitempty"`
	Tagline    string                `json:"tagline,omitempty"`
	Events     []CalendarEvent       `json:"events,omitempty"`
	Generated  time.Time             `json:"generated"`
}
