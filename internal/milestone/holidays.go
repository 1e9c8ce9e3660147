package milestone

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
)

// Easter returns Western Easter Sunday for year (Meeus/Jones/Butcher).
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Thanksgiving returns US Thanksgiving, the fourth Thursday of November.
func Thanksgiving(year int) time.Time {
	first := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Thursday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+21)
}

// DateFor resolves a calculated holiday for a year.
func DateFor(calc domain.HolidayCalc, year int) (time.Time, bool) {
	switch calc {
	case domain.HolidayCalcEaster:
		return Easter(year), true
	case domain.HolidayCalcThanksgiving:
		return Thanksgiving(year), true
	default:
		return time.Time{}, false
	}
}

// ParseMonthDay parses a fixed "MM/DD" holiday date. Feb 29 is accepted.
func ParseMonthDay(s string) (time.Month, int, error) {
	mm, dd, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return 0, 0, fmt.Errorf("date %q is not MM/DD", s)
	}
	month, err := strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("date %q has an invalid month", s)
	}
	day, err := strconv.Atoi(dd)
	if err != nil || day < 1 || day > daysIn(2000, time.Month(month)) {
		return 0, 0, fmt.Errorf("date %q has an invalid day", s)
	}
	return time.Month(month), day, nil
}

// daysIn uses a UTC calendar; only the month length matters.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
