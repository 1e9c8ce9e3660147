package milestone

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
)

type standard struct {
	label  string
	icon   string
	season Season
	phrase string
}

var standards = map[domain.MilestoneType]standard{
	domain.MilestoneBirthdays: {label: "Birthdays", icon: "🎂", phrase: "more birthdays to celebrate"},
	domain.MilestoneSummers:   {label: "Summers", icon: "☀️", season: Summer, phrase: "more summers to enjoy"},
	domain.MilestoneWinters:   {label: "Winters", icon: "❄️", season: Winter, phrase: "more winters to embrace"},
	domain.MilestoneSpring:    {label: "Springs", icon: "🌸", season: Spring, phrase: "more springs to bloom"},
	domain.MilestoneFall:      {label: "Falls", icon: "🍂", season: Fall, phrase: "more autumns to savor"},
	domain.MilestoneWeekends:  {label: "Weekends", icon: "🏖️", phrase: "more weekends to make count"},
}

// Calculate returns the selected standard milestones in selection order,
// followed by one milestone per selected holiday. Unknown milestone types and
// holiday IDs are skipped. The holidays type itself carries no count; holiday
// milestones come from prefs.SelectedHolidays.
func (c *Counter) Calculate(prefs domain.OutlookPreferences, birth, now, end time.Time, holidays domain.HolidaySet) []domain.Milestone {
	var out []domain.Milestone
	for _, t := range prefs.SelectedMilestones {
		if t == domain.MilestoneHolidays {
			continue
		}
		std, ok := standards[t]
		if !ok {
			c.logger.Warn().Str("type", string(t)).Msg("skipping unknown milestone type")
			continue
		}

		var count int
		switch t {
		case domain.MilestoneBirthdays:
			count = CountBirthdays(birth, now, end)
		case domain.MilestoneWeekends:
			count = CountWeekends(now, end)
		default:
			count = c.CountSeasons(now, end, std.season)
		}

		out = append(out, domain.Milestone{
			ID:          string(t),
			Type:        t,
			Label:       std.label,
			Icon:        std.icon,
			Count:       count,
			Description: fmt.Sprintf("%d %s", count, std.phrase),
		})
	}

	for _, id := range prefs.SelectedHolidays {
		def, ok := holidays.Find(id)
		if !ok {
			c.logger.Debug().Str("holiday", id).Msg("selected holiday not in catalogue")
			continue
		}
		count := c.CountHoliday(def, now, end)
		out = append(out, domain.Milestone{
			ID:          "holiday-" + def.ID,
			Type:        domain.MilestoneHolidays,
			Label:       def.Name,
			Icon:        def.Icon,
			Count:       count,
			Description: fmt.Sprintf("%d more %s celebrations", count, def.Name),
		})
	}
	return out
}

// Taglines rotate under the milestone list when motivational text is on.
var Taglines = []string{
	"Make every moment count",
	"Time is finite. Experiences are precious.",
	"Every day is a gift",
	"Live intentionally",
	"Seize the day",
}

// Tagline returns the i-th tagline, wrapping around.
func Tagline(i int) string {
	n := len(Taglines)
	return Taglines[((i%n)+n)%n]
}
