// Package calculation turns a birth date, a reference instant and a life
// expectancy into elapsed/remaining breakdowns and timeline grids. Every
// function is pure: callers supply now.
package calculation

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
)

// TimeLivedSince breaks the span from birth to now into calendar components.
// A birth after now yields the zero breakdown.
func TimeLivedSince(birth, now time.Time) domain.TimeBreakdown {
	if birth.After(now) {
		return domain.TimeBreakdown{}
	}
	now = now.In(birth.Location())

	years := DiffYears(now, birth)
	afterYears := AddYears(birth, years)
	months := DiffMonths(now, afterYears)
	afterMonths := AddMonths(afterYears, months)
	days := DiffDays(now, afterMonths)

	// The remainder is measured from the last whole calendar day, so a DST
	// change only moves it by the shifted hour. Hours reach 24 during the
	// repeated hour of a fall-back day.
	rest := now.Sub(afterMonths.AddDate(0, 0, days))
	return domain.TimeBreakdown{
		Years:        years,
		Months:       months,
		Days:         days,
		Hours:        int(rest / time.Hour),
		Minutes:      int(rest/time.Minute) % 60,
		Seconds:      int(rest/time.Second) % 60,
		TotalSeconds: int64(now.Sub(birth) / time.Second),
	}
}

// TimeRemainingUntil is the breakdown from now to the expected end date, or
// zero once that date has passed.
func TimeRemainingUntil(birth time.Time, lifeExpectancy float64, now time.Time) domain.TimeBreakdown {
	end := ExpectedEndDate(birth, lifeExpectancy)
	if end.Before(now) {
		return domain.TimeBreakdown{}
	}
	return TimeLivedSince(now, end)
}

// IsOverLifeExpectancy reports whether now is strictly after the expected end date.
func IsOverLifeExpectancy(birth time.Time, lifeExpectancy float64, now time.Time) bool {
	return now.After(ExpectedEndDate(birth, lifeExpectancy))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatTimeLived renders the calendar part of a breakdown, e.g.
// "25 years, 3 months, 15 days". Zero components are omitted.
func FormatTimeLived(b domain.TimeBreakdown) string {
	var parts []string
	if b.Years > 0 {
		parts = append(parts, plural(b.Years, "year"))
	}
	if b.Months > 0 {
		parts = append(parts, plural(b.Months, "month"))
	}
	if b.Days > 0 {
		parts = append(parts, plural(b.Days, "day"))
	}
	return strings.Join(parts, ", ")
}

// FormatClock renders HH:MM:SS.
func FormatClock(hours, minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// PercentLived is the share of the expected lifespan already elapsed, in [0, 100].
func PercentLived(birth time.Time, lifeExpectancy float64, now time.Time) float64 {
	end := ExpectedEndDate(birth, lifeExpectancy)
	total := end.Sub(birth)
	if total <= 0 || !now.After(birth) {
		return 0
	}
	pct := float64(now.Sub(birth)) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
