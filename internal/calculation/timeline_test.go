package calculation

import (
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	scenarioBirth = date(2000, time.June, 15)
	scenarioNow   = date(2026, time.January, 1)
)

func build(t *testing.T, birth, now time.Time, le float64, g domain.Granularity) domain.TimelineData {
	t.Helper()
	data, err := BuildTimeline(birth, now, le, g)
	require.NoError(t, err)
	require.Len(t, data.Units, data.Layout.TotalUnits)
	return data
}

// assertSingleState checks that each unit is in exactly one state and that
// the layout's current unit is the only current cell.
func assertSingleState(t *testing.T, data domain.TimelineData) {
	t.Helper()
	current := 0
	for i, u := range data.Units {
		assert.Equal(t, i, u.Index)
		if u.IsPreBirth {
			assert.False(t, u.IsLived || u.IsCurrent, "unit %d", i)
		}
		assert.False(t, u.IsLived && u.IsCurrent, "unit %d", i)
		if u.IsCurrent {
			current++
			assert.Equal(t, data.Layout.CurrentUnit, i)
		}
	}
	if data.Layout.CurrentUnit >= 0 {
		assert.Equal(t, 1, current)
	} else {
		assert.Equal(t, 0, current)
	}
}

func TestBuildTimeline_Years(t *testing.T) {
	data := build(t, scenarioBirth, scenarioNow, 80, domain.GranularityYears)
	assertSingleState(t, data)

	layout := data.Layout
	assert.Equal(t, 80, layout.TotalUnits)
	assert.Equal(t, 10, layout.Columns)
	assert.Equal(t, 8, layout.Rows)
	assert.Equal(t, 26, layout.CurrentUnit)
	assert.Equal(t, 26, layout.LivedUnits)
	assert.Equal(t, 53, layout.RemainingUnits)
	assert.InDelta(t, 32.5, layout.PercentComplete, 1e-9)
	require.NotNil(t, layout.ActualYears)
	assert.Equal(t, 25, *layout.ActualYears)
	require.NotNil(t, layout.ActualTotalYears)
	assert.Equal(t, 80, *layout.ActualTotalYears)

	current := data.Units[26]
	assert.True(t, current.IsCurrent)
	assert.Equal(t, "2026", current.Label)
	assert.Equal(t, "2026 (Currently 25, turning 26 on Jun 15)", current.DetailsText)

	assert.True(t, data.Units[25].IsLived)
	assert.Equal(t, "2025 (Age 25)", data.Units[25].DetailsText)
	assert.False(t, data.Units[27].IsLived)
	assert.Equal(t, "2027 (Age 27)", data.Units[27].DetailsText)
}

func TestBuildTimeline_YearsAfterBirthday(t *testing.T) {
	data := build(t, scenarioBirth, date(2026, time.June, 15), 80, domain.GranularityYears)
	assert.Equal(t, "2026 (Age 26)", data.Units[26].DetailsText)
}

func TestBuildTimeline_YearsFractionalExpectancy(t *testing.T) {
	data := build(t, scenarioBirth, scenarioNow, 77.4, domain.GranularityYears)
	assert.Equal(t, 78, data.Layout.TotalUnits)
	assert.Equal(t, 8, data.Layout.Rows)
}

func TestBuildTimeline_YearsBeyondExpectancy(t *testing.T) {
	data := build(t, scenarioBirth, date(2090, time.January, 1), 80, domain.GranularityYears)
	assertSingleState(t, data)

	assert.Equal(t, -1, data.Layout.CurrentUnit)
	assert.Equal(t, 80, data.Layout.LivedUnits)
	assert.Equal(t, 0, data.Layout.RemainingUnits)
	assert.InDelta(t, 100, data.Layout.PercentComplete, 1e-9)
}

func TestBuildTimeline_Months(t *testing.T) {
	data := build(t, scenarioBirth, scenarioNow, 80, domain.GranularityMonths)
	assertSingleState(t, data)

	layout := data.Layout
	assert.Equal(t, 81, layout.Rows)
	assert.Equal(t, 12, layout.Columns)
	assert.Equal(t, 972, layout.TotalUnits)
	assert.Equal(t, 312, layout.CurrentUnit)
	assert.Equal(t, 308, layout.LivedUnits)
	assert.Equal(t, 663, layout.RemainingUnits)
	assert.Nil(t, layout.ActualYears)

	for m := 0; m < 5; m++ {
		u := data.Units[m]
		assert.True(t, u.IsPreBirth, "month %d", m)
		assert.False(t, u.IsLived)
		assert.Equal(t, 0, u.Age)
		assert.Equal(t, "Born June 15, 2000", u.DetailsText)
	}
	assert.Equal(t, "Jan 2000", data.Units[0].Label)

	birthMonth := data.Units[5]
	assert.False(t, birthMonth.IsPreBirth)
	assert.True(t, birthMonth.IsLived)
	assert.Equal(t, "June 2000 (Age 0)", birthMonth.DetailsText)

	assert.Equal(t, "December 2000 (Age 0)", data.Units[11].DetailsText)
	assert.Equal(t, "May 2001 (Age 0)", data.Units[16].DetailsText)

	firstBirthday := data.Units[17]
	assert.Equal(t, "June 2001 (Age 0 → 1)", firstBirthday.DetailsText)
	assert.Equal(t, 1, firstBirthday.Age)

	current := data.Units[312]
	assert.Equal(t, "Jan 2026", current.Label)
	assert.Equal(t, "January 2026 (Age 25)", current.DetailsText)
}

func TestBuildTimeline_MonthsJanuaryBirth(t *testing.T) {
	data := build(t, date(1990, time.January, 3), scenarioNow, 80, domain.GranularityMonths)
	for _, u := range data.Units {
		assert.False(t, u.IsPreBirth)
	}
	assert.Equal(t, "January 1990 (Age 0)", data.Units[0].DetailsText)
}

func TestBuildTimeline_Weeks(t *testing.T) {
	data := build(t, scenarioBirth, scenarioNow, 80, domain.GranularityWeeks)
	assertSingleState(t, data)

	layout := data.Layout
	assert.Equal(t, 4160, layout.TotalUnits)
	assert.Equal(t, 52, layout.Columns)
	assert.Equal(t, 80, layout.Rows)
	assert.Equal(t, 1333, layout.LivedUnits)
	assert.Equal(t, 1333, layout.CurrentUnit)
	assert.Equal(t, 2826, layout.RemainingUnits)

	first := data.Units[0]
	assert.False(t, first.IsPreBirth)
	assert.True(t, first.IsLived)
	assert.Equal(t, "Jun 15, 2000", first.Label)
	assert.Equal(t, "Week 1: Jun 15-Jun 22, 2000 (Age 0)", first.DetailsText)

	birthday := data.Units[52]
	assert.Equal(t, "Week 53: Jun 14-Jun 21, 2001 (Age 0 → 1)", birthday.DetailsText)
	assert.Equal(t, 1, birthday.Age)

	assert.Equal(t, "Week 1,234: Feb 01-Feb 08, 2024 (Age 23)", data.Units[1233].DetailsText)
}

func TestBuildTimeline_WeeksFirstWeek(t *testing.T) {
	birth := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)

	data := build(t, birth, birth.Add(6*24*time.Hour), 80, domain.GranularityWeeks)
	first := data.Units[0]
	assert.False(t, first.IsPreBirth)
	assert.False(t, first.IsLived)
	assert.True(t, first.IsCurrent)
	assert.NotContains(t, first.DetailsText, "→")

	data = build(t, birth, birth.AddDate(0, 0, 7), 80, domain.GranularityWeeks)
	assert.True(t, data.Units[0].IsLived)
	assert.True(t, data.Units[1].IsCurrent)
}

func TestBuildTimeline_WeeksBirthdayTransitionsOncePerYear(t *testing.T) {
	data := build(t, scenarioBirth, scenarioNow, 10, domain.GranularityWeeks)

	transitions := 0
	for _, u := range data.Units {
		if strings.Contains(u.DetailsText, "→") {
			transitions++
		}
	}
	assert.Equal(t, 9, transitions)
}

func TestBuildTimeline_BeforeBirth(t *testing.T) {
	for _, g := range domain.Granularities {
		data := build(t, scenarioBirth, date(1999, time.January, 1), 80, g)
		assertSingleState(t, data)
		assert.Equal(t, 0, data.Layout.LivedUnits, g)
		assert.Equal(t, -1, data.Layout.CurrentUnit, g)
	}
}

func TestBuildTimeline_UnknownGranularity(t *testing.T) {
	_, err := BuildTimeline(scenarioBirth, scenarioNow, 80, domain.Granularity("days"))
	assert.Error(t, err)
}

func TestGranularityNames(t *testing.T) {
	assert.Equal(t, "Weeks", GranularityLabel(domain.GranularityWeeks))
	assert.Equal(t, "year", UnitName(domain.GranularityYears, 1))
	assert.Equal(t, "months", UnitName(domain.GranularityMonths, 2))
	assert.Equal(t, "weeks", UnitName(domain.GranularityWeeks, 0))
}
