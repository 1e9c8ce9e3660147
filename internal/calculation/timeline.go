package calculation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	yearColumns  = 10
	monthColumns = 12
	weekColumns  = 52
)

var numbers = message.NewPrinter(language.English)

// BuildTimeline lays out the life grid for one granularity. Cell states are
// derived from now on every call; nothing is carried between calls.
func BuildTimeline(birth, now time.Time, lifeExpectancy float64, g domain.Granularity) (domain.TimelineData, error) {
	now = now.In(birth.Location())
	switch g {
	case domain.GranularityYears:
		return buildYears(birth, now, lifeExpectancy), nil
	case domain.GranularityMonths:
		return buildMonths(birth, now, lifeExpectancy), nil
	case domain.GranularityWeeks:
		return buildWeeks(birth, now, lifeExpectancy), nil
	default:
		return domain.TimelineData{}, fmt.Errorf("unknown granularity %q", g)
	}
}

func ceilUnits(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Ceil(v))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// layoutFor fills in the counters shared by the years and weeks grids. index
// is the position of now on the grid and may fall outside it.
func layoutFor(total, columns, index int) domain.GridLayout {
	layout := domain.GridLayout{
		Rows:        (total + columns - 1) / columns,
		Columns:     columns,
		TotalUnits:  total,
		LivedUnits:  clamp(index, 0, total),
		CurrentUnit: -1,
	}
	if index >= 0 && index < total {
		layout.CurrentUnit = index
	}
	layout.RemainingUnits = total - layout.LivedUnits
	if layout.CurrentUnit >= 0 {
		layout.RemainingUnits--
	}
	layout.PercentComplete = percent(layout.LivedUnits, total)
	return layout
}

// anniversary is the birthday in the given year at midnight, with Feb 29
// clamped to Feb 28 in common years.
func anniversary(birth time.Time, year int) time.Time {
	midnight := time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, birth.Location())
	return AddYears(midnight, year-birth.Year())
}

func buildYears(birth, now time.Time, lifeExpectancy float64) domain.TimelineData {
	total := ceilUnits(lifeExpectancy)
	currentIndex := now.Year() - birth.Year()
	birthdayPassed := !now.Before(anniversary(birth, now.Year()))

	units := make([]domain.TimelineUnit, 0, total)
	for i := 0; i < total; i++ {
		year := birth.Year() + i
		unit := domain.TimelineUnit{
			Index:       i,
			IsLived:     year < now.Year(),
			IsCurrent:   i == currentIndex,
			Label:       fmt.Sprint(year),
			DetailsText: fmt.Sprintf("%d (Age %d)", year, i),
			Age:         i,
		}
		if unit.IsCurrent && !birthdayPassed {
			unit.DetailsText = fmt.Sprintf("%d (Currently %d, turning %d on %s %d)",
				year, i-1, i, birth.Format("Jan"), birth.Day())
		}
		units = append(units, unit)
	}

	layout := layoutFor(total, yearColumns, currentIndex)
	actual := max(DiffYears(now, birth), 0)
	layout.ActualYears = &actual
	layout.ActualTotalYears = &total

	return domain.TimelineData{Granularity: domain.GranularityYears, Layout: layout, Units: units}
}

func buildMonths(birth, now time.Time, lifeExpectancy float64) domain.TimelineData {
	rows := ceilUnits(lifeExpectancy) + 1
	total := rows * monthColumns
	birthMonth := int(birth.Month()) - 1

	layout := domain.GridLayout{Rows: rows, Columns: monthColumns, TotalUnits: total, CurrentUnit: -1}
	units := make([]domain.TimelineUnit, 0, total)
	for offset := 0; offset < rows; offset++ {
		year := birth.Year() + offset
		for m := 0; m < monthColumns; m++ {
			monthStart := time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, birth.Location())
			unit := domain.TimelineUnit{
				Index: offset*monthColumns + m,
				Label: monthStart.Format("Jan 2006"),
			}

			if offset == 0 && m < birthMonth {
				unit.IsPreBirth = true
				unit.DetailsText = "Born " + birth.Format("January 02, 2006")
				units = append(units, unit)
				continue
			}

			name := monthStart.Format("January 2006")
			switch {
			case m == birthMonth && offset == 0:
				unit.DetailsText = name + " (Age 0)"
			case m == birthMonth:
				unit.Age = offset
				unit.DetailsText = fmt.Sprintf("%s (Age %d → %d)", name, offset-1, offset)
			default:
				unit.Age = offset
				if m < birthMonth {
					unit.Age = offset - 1
				}
				unit.DetailsText = fmt.Sprintf("%s (Age %d)", name, unit.Age)
			}

			unit.IsCurrent = year == now.Year() && time.Month(m+1) == now.Month()
			unit.IsLived = year < now.Year() || (year == now.Year() && time.Month(m+1) < now.Month())
			if unit.IsLived || unit.IsCurrent {
				layout.LivedUnits++
			}
			if unit.IsCurrent {
				layout.CurrentUnit = unit.Index
			}
			units = append(units, unit)
		}
	}

	layout.RemainingUnits = total - layout.LivedUnits
	if layout.CurrentUnit >= 0 {
		layout.RemainingUnits--
	}
	layout.PercentComplete = percent(layout.LivedUnits, total)

	return domain.TimelineData{Granularity: domain.GranularityMonths, Layout: layout, Units: units}
}

func buildWeeks(birth, now time.Time, lifeExpectancy float64) domain.TimelineData {
	total := ceilUnits(lifeExpectancy * weekColumns)
	livedWeeks := DiffWeeks(now, birth)

	units := make([]domain.TimelineUnit, 0, total)
	for i := 0; i < total; i++ {
		start := birth.AddDate(0, 0, 7*i)
		end := start.AddDate(0, 0, 7)
		age := DiffYears(start, birth)

		span := fmt.Sprintf("Week %s: %s-%s", numbers.Sprintf("%d", i+1), start.Format("Jan 02"), end.Format("Jan 02, 2006"))
		details := fmt.Sprintf("%s (Age %d)", span, age)
		if i > 0 && containsAnniversary(birth, start, end) {
			details = fmt.Sprintf("%s (Age %d → %d)", span, age, age+1)
			age++
		}

		units = append(units, domain.TimelineUnit{
			Index:       i,
			IsLived:     i < livedWeeks,
			IsCurrent:   i == livedWeeks,
			Label:       start.Format("Jan 02, 2006"),
			DetailsText: details,
			Age:         age,
		})
	}

	return domain.TimelineData{
		Granularity: domain.GranularityWeeks,
		Layout:      layoutFor(total, weekColumns, livedWeeks),
		Units:       units,
	}
}

// containsAnniversary reports whether a birthday falls in [start, end).
func containsAnniversary(birth, start, end time.Time) bool {
	for year := start.Year(); year <= end.Year(); year++ {
		day := anniversary(birth, year)
		if !day.Before(start) && day.Before(end) {
			return true
		}
	}
	return false
}

// GranularityLabel is the display name of a granularity.
func GranularityLabel(g domain.Granularity) string {
	s := string(g)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// UnitName returns the granularity name, singular when count is 1.
func UnitName(g domain.Granularity, count int) string {
	if count == 1 {
		return strings.TrimSuffix(string(g), "s")
	}
	return string(g)
}
