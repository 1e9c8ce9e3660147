package calculation

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLivedSince(t *testing.T) {
	birth := date(2000, time.June, 15)
	now := time.Date(2026, time.January, 1, 13, 45, 30, 0, time.UTC)

	got := TimeLivedSince(birth, now)
	assert.Equal(t, 25, got.Years)
	assert.Equal(t, 6, got.Months)
	assert.Equal(t, 17, got.Days)
	assert.Equal(t, 13, got.Hours)
	assert.Equal(t, 45, got.Minutes)
	assert.Equal(t, 30, got.Seconds)
	assert.Equal(t, int64(now.Sub(birth)/time.Second), got.TotalSeconds)
}

// rebuild applies a breakdown to from the same way it was derived.
func rebuild(from time.Time, b domain.TimeBreakdown) time.Time {
	t := AddMonths(AddYears(from, b.Years), b.Months).AddDate(0, 0, b.Days)
	return t.Add(time.Duration(b.Hours)*time.Hour +
		time.Duration(b.Minutes)*time.Minute +
		time.Duration(b.Seconds)*time.Second)
}

func TestTimeLivedSince_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name       string
		birth, now time.Time
		want       domain.TimeBreakdown
	}{
		{
			name:  "spring forward inside the day count",
			birth: time.Date(2000, time.February, 20, 12, 0, 0, 0, ny),
			now:   time.Date(2026, time.March, 15, 12, 0, 0, 0, ny),
			want:  domain.TimeBreakdown{Years: 26, Days: 23},
		},
		{
			name:  "fall back inside the day count",
			birth: time.Date(2000, time.October, 20, 12, 0, 0, 0, ny),
			now:   time.Date(2025, time.November, 10, 12, 0, 0, 0, ny),
			want:  domain.TimeBreakdown{Years: 25, Days: 21},
		},
		{
			name:  "spring forward inside the remainder",
			birth: time.Date(2000, time.March, 8, 0, 30, 0, 0, ny),
			now:   time.Date(2026, time.March, 8, 3, 30, 0, 0, ny),
			want:  domain.TimeBreakdown{Years: 26, Hours: 2},
		},
		{
			name:  "fall back inside the remainder",
			birth: time.Date(2000, time.November, 1, 0, 30, 0, 0, ny),
			now:   time.Date(2026, time.November, 1, 0, 30, 0, 0, ny).Add(2 * time.Hour),
			want:  domain.TimeBreakdown{Years: 26, Hours: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeLivedSince(tt.birth, tt.now)
			assert.Equal(t, tt.want.Years, got.Years)
			assert.Equal(t, tt.want.Months, got.Months)
			assert.Equal(t, tt.want.Days, got.Days)
			assert.Equal(t, tt.want.Hours, got.Hours)
			assert.Equal(t, tt.want.Minutes, got.Minutes)
			assert.Equal(t, tt.want.Seconds, got.Seconds)
			assert.WithinDuration(t, tt.now, rebuild(tt.birth, got), time.Second)
		})
	}
}

func TestTimeRemainingUntil_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, ny)
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, ny)

	got := TimeRemainingUntil(birth, 80, now)
	assert.Equal(t, 54, got.Years)
	assert.Equal(t, 2, got.Months)
	assert.Equal(t, 30, got.Days)
	assert.Equal(t, 12, got.Hours)
	assert.WithinDuration(t, ExpectedEndDate(birth, 80), rebuild(now, got), time.Second)
}

func TestTimeLivedSince_BirthAfterNow(t *testing.T) {
	got := TimeLivedSince(date(2030, time.January, 1), date(2026, time.January, 1))
	assert.True(t, got.IsZero())
}

func TestTimeRemainingUntil(t *testing.T) {
	birth := date(2000, time.June, 15)

	got := TimeRemainingUntil(birth, 80, date(2026, time.January, 1))
	assert.Equal(t, 54, got.Years)
	assert.Equal(t, 5, got.Months)
	assert.Equal(t, 14, got.Days)

	assert.True(t, TimeRemainingUntil(birth, 20, date(2026, time.January, 1)).IsZero())
}

func TestIsOverLifeExpectancy(t *testing.T) {
	birth := date(2000, time.June, 15)

	assert.False(t, IsOverLifeExpectancy(birth, 80, date(2026, time.January, 1)))
	assert.False(t, IsOverLifeExpectancy(birth, 80, date(2080, time.June, 15)))
	assert.True(t, IsOverLifeExpectancy(birth, 80, date(2080, time.June, 15).Add(time.Second)))
}

func TestFormatTimeLived(t *testing.T) {
	assert.Equal(t, "25 years, 3 months, 15 days", FormatTimeLived(domain.TimeBreakdown{Years: 25, Months: 3, Days: 15}))
	assert.Equal(t, "1 year, 1 day", FormatTimeLived(domain.TimeBreakdown{Years: 1, Days: 1}))
	assert.Equal(t, "1 month", FormatTimeLived(domain.TimeBreakdown{Months: 1, Hours: 5}))
	assert.Equal(t, "", FormatTimeLived(domain.TimeBreakdown{}))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "12:34:56", FormatClock(12, 34, 56))
	assert.Equal(t, "00:05:09", FormatClock(0, 5, 9))
}

func TestPercentLived(t *testing.T) {
	birth := date(2000, time.June, 15)

	assert.InDelta(t, 50, PercentLived(birth, 80, date(2040, time.June, 15)), 0.01)
	assert.Equal(t, 0.0, PercentLived(birth, 80, date(1999, time.January, 1)))
	assert.Equal(t, 100.0, PercentLived(birth, 80, date(2090, time.January, 1)))
}
