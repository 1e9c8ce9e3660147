package calculation

import "time"

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// AddMonths adds n calendar months to t, clamping the day to the end of the
// target month (Jan 31 + 1 month = Feb 28 or 29). time.AddDate normalises
// overflow into the following month instead.
func AddMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	day := t.Day()
	if last := daysIn(year, month, t.Location()); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears adds n calendar years to t with the same clamping as AddMonths,
// so Feb 29 maps to Feb 28 in common years.
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, n*12)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// clockBefore compares the month, day and time of day of a and b, ignoring the year.
func clockBefore(a, b time.Time) bool {
	if a.Month() != b.Month() {
		return a.Month() < b.Month()
	}
	if a.Day() != b.Day() {
		return a.Day() < b.Day()
	}
	ad := a.Sub(time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location()))
	bd := b.Sub(time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location()))
	return ad < bd
}

// DiffYears returns the number of full years between from and to. The result
// is negative when to is before from.
func DiffYears(to, from time.Time) int {
	if to.Before(from) {
		return -DiffYears(from, to)
	}
	to = to.In(from.Location())
	years := to.Year() - from.Year()
	if years > 0 && clockBefore(to, from) {
		years--
	}
	return years
}

// DiffMonths returns the number of full months between from and to.
func DiffMonths(to, from time.Time) int {
	if to.Before(from) {
		return -DiffMonths(from, to)
	}
	to = to.In(from.Location())
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months > 0 && AddMonths(from, months).After(to) {
		months--
	}
	return months
}

// DiffDays returns the number of full days between from and to, counted on
// the calendar so that DST shifts do not lose a day.
func DiffDays(to, from time.Time) int {
	if to.Before(from) {
		return -DiffDays(from, to)
	}
	to = to.In(from.Location())
	days := calendarDays(to, from)
	if days > 0 && from.AddDate(0, 0, days).After(to) {
		days--
	}
	return days
}

// DiffWeeks returns the number of full weeks between from and to.
func DiffWeeks(to, from time.Time) int {
	return DiffDays(to, from) / 7
}

func calendarDays(to, from time.Time) int {
	a := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}

// ExpectedEndDate returns birth plus a possibly fractional number of years.
// Whole years are added on the calendar; the fraction is a share of the
// length of the following year, so 80.5 lands half way through year 81.
func ExpectedEndDate(birth time.Time, years float64) time.Time {
	whole := int(years)
	if float64(whole) > years {
		whole--
	}
	end := AddYears(birth, whole)
	if frac := years - float64(whole); frac > 0 {
		next := AddYears(birth, whole+1)
		end = end.Add(time.Duration(frac * float64(next.Sub(end))))
	}
	return end
}
