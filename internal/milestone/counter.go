// Package milestone counts the recurring events left before an expected end
// of life: birthdays, seasons, weekends and holidays.
package milestone

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rs/zerolog"
)

// Season is a Northern-hemisphere season with fixed start dates.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

type monthDay struct {
	month time.Month
	day   int
}

func (md monthDay) reachedBy(t time.Time) bool {
	return md.month < t.Month() || (md.month == t.Month() && md.day <= t.Day())
}

var seasonStarts = map[Season]monthDay{
	Spring: {time.March, 20},
	Summer: {time.June, 21},
	Fall:   {time.September, 21},
	Winter: {time.December, 21},
}

var seasonOrder = []Season{Spring, Summer, Fall, Winter}

// seasonOf returns the season a calendar day falls in.
func seasonOf(t time.Time) Season {
	current := Winter
	for _, s := range seasonOrder {
		if seasonStarts[s].reachedBy(t) {
			current = s
		}
	}
	return current
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// onDay places a calendar date at midnight in loc.
func onDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// Counter counts milestones. Unknown seasons and malformed holidays are
// logged and count as zero.
type Counter struct {
	logger zerolog.Logger
}

// NewCounter returns a counter with a no-op logger.
func NewCounter() *Counter {
	return &Counter{logger: zerolog.Nop()}
}

// SetLogger sets the logger. nil restores the no-op logger.
func (c *Counter) SetLogger(logger *zerolog.Logger) {
	if logger == nil {
		c.logger = zerolog.Nop()
		return
	}
	c.logger = logger.With().Str("component", "milestone").Logger()
}

// CountSeasons counts how many times season begins in (start, end], plus one
// when start already falls inside it.
func (c *Counter) CountSeasons(start, end time.Time, season Season) int {
	begin, ok := seasonStarts[season]
	if !ok {
		c.logger.Warn().Str("season", string(season)).Msg("unknown season")
		return 0
	}
	if end.Before(start) {
		return 0
	}

	end = end.In(start.Location())
	count := 0
	for year := start.Year(); year <= end.Year(); year++ {
		day := onDay(year, begin.month, begin.day, start.Location())
		if day.After(start) && !day.After(end) {
			count++
		}
	}
	if seasonOf(start) == season {
		count++
	}
	return count
}

// CountBirthdays counts the anniversaries of birth from today through end.
// Today's birthday counts even when it is already under way.
func CountBirthdays(birth, now, end time.Time) int {
	return len(BirthdayDates(birth, now, end))
}

// BirthdayDates lists the anniversaries CountBirthdays counts, at midnight
// in birth's location.
func BirthdayDates(birth, now, end time.Time) []time.Time {
	now = now.In(birth.Location())
	end = end.In(birth.Location())
	today := startOfDay(now)

	var dates []time.Time
	for year := max(now.Year(), birth.Year()+1); year <= end.Year(); year++ {
		day := anniversary(birth, year)
		if !day.Before(today) && !day.After(end) {
			dates = append(dates, day)
		}
	}
	return dates
}

// anniversary is the birthday in year; Feb 29 falls on Feb 28 in common years.
func anniversary(birth time.Time, year int) time.Time {
	day := birth.Day()
	if last := daysIn(year, birth.Month()); day > last {
		day = last
	}
	return onDay(year, birth.Month(), day, birth.Location())
}

// CountWeekends counts Saturday+Sunday pairs between the calendar days of now
// and end inclusive, as the number of weekend days halved.
func CountWeekends(now, end time.Time) int {
	end = end.In(now.Location())
	first := startOfDay(now)
	last := startOfDay(end)
	if last.Before(first) {
		return 0
	}

	days := int(onDay(last.Year(), last.Month(), last.Day(), time.UTC).
		Sub(onDay(first.Year(), first.Month(), first.Day(), time.UTC)).Hours()/24) + 1

	weekendDays := days / 7 * 2
	wd := first.Weekday()
	for i := 0; i < days%7; i++ {
		if wd == time.Saturday || wd == time.Sunday {
			weekendDays++
		}
		wd = (wd + 1) % 7
	}
	return weekendDays / 2
}

// CountHoliday counts occurrences of a holiday between today and end. A
// definition that cannot be resolved to a date counts as zero.
func (c *Counter) CountHoliday(def domain.HolidayDefinition, now, end time.Time) int {
	return len(c.HolidayDates(def, now, end))
}

// HolidayDates lists the occurrences CountHoliday counts, at midnight in
// now's location.
func (c *Counter) HolidayDates(def domain.HolidayDefinition, now, end time.Time) []time.Time {
	dateFor, err := c.resolver(def)
	if err != nil {
		c.logger.Warn().Err(err).Str("holiday", def.ID).Msg("skipping malformed holiday")
		return nil
	}

	end = end.In(now.Location())
	today := startOfDay(now)
	var dates []time.Time
	for year := now.Year(); year <= end.Year(); year++ {
		day, ok := dateFor(year)
		if !ok {
			continue
		}
		day = onDay(day.Year(), day.Month(), day.Day(), now.Location())
		if !day.Before(today) && !day.After(end) {
			dates = append(dates, day)
		}
	}
	return dates
}

func (c *Counter) resolver(def domain.HolidayDefinition) (func(int) (time.Time, bool), error) {
	switch def.Kind {
	case domain.HolidayCalculated:
		if def.Calc == domain.HolidayCalcNone {
			return nil, fmt.Errorf("calculated holiday has no calculation")
		}
		return func(year int) (time.Time, bool) { return DateFor(def.Calc, year) }, nil
	case domain.HolidayFixed, domain.HolidayCustom, "":
		month, day, err := ParseMonthDay(def.Date)
		if err != nil {
			return nil, err
		}
		return func(year int) (time.Time, bool) {
			if day > daysIn(year, month) {
				return time.Time{}, false
			}
			return onDay(year, month, day, time.UTC), true
		}, nil
	default:
		return nil, fmt.Errorf("unknown holiday type %q", def.Kind)
	}
}
