package expectancy

import (
	"math"
	"sort"
	"sync"

	"github.com/rgehrsitz/lifeclock/internal/dataset"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type percentilePoint struct {
	percentile   int
	maleIncome   float64
	femaleIncome float64
}

func (p percentilePoint) income(gender domain.Gender) float64 {
	switch gender {
	case domain.GenderFemale:
		return p.femaleIncome
	case domain.GenderOther:
		return (p.maleIncome + p.femaleIncome) / 2
	default:
		return p.maleIncome
	}
}

// IncomeMapper converts between household income and income percentile.
type IncomeMapper struct {
	store  *dataset.Store
	logger zerolog.Logger

	once   sync.Once
	points []percentilePoint
}

// NewIncomeMapper creates a mapper backed by store.
func NewIncomeMapper(store *dataset.Store) *IncomeMapper {
	return &IncomeMapper{store: store, logger: zerolog.Nop()}
}

// SetLogger sets the logger for warnings. nil restores the no-op logger.
func (m *IncomeMapper) SetLogger(logger *zerolog.Logger) {
	if logger == nil {
		m.logger = zerolog.Nop()
		return
	}
	m.logger = logger.With().Str("component", "income_mapper").Logger()
}

// table returns percentiles that have both a male and a female row, sorted
// by percentile. It is empty when the income table is unavailable.
func (m *IncomeMapper) table() []percentilePoint {
	m.once.Do(func() {
		income, err := m.store.Income()
		if err != nil {
			return
		}
		byPct := make(map[int]*percentilePoint)
		seen := make(map[int]int)
		for _, row := range income.Rows() {
			pt, ok := byPct[row.Percentile]
			if !ok {
				pt = &percentilePoint{percentile: row.Percentile}
				byPct[row.Percentile] = pt
			}
			switch row.GenderCode {
			case "M":
				pt.maleIncome = row.HouseholdIncome
			case "F":
				pt.femaleIncome = row.HouseholdIncome
			}
			seen[row.Percentile]++
		}
		for pct, pt := range byPct {
			if seen[pct] == 2 {
				m.points = append(m.points, *pt)
			}
		}
		sort.Slice(m.points, func(i, j int) bool { return m.points[i].percentile < m.points[j].percentile })
	})
	return m.points
}

// PercentileForIncome maps a household income to a percentile in [1, 100].
// Incomes outside the table clamp to 1 or 100; others are linearly
// interpolated and rounded. Negative incomes are rejected.
func (m *IncomeMapper) PercentileForIncome(income float64, gender domain.Gender) (int, bool) {
	if !finite(income) {
		m.logger.Warn().Float64("income", income).Msg("non-finite income rejected")
		return 0, false
	}
	if income < 0 {
		m.logger.Warn().Float64("income", income).Msg("negative income rejected")
		return 0, false
	}
	points := m.table()
	if len(points) == 0 {
		return 0, false
	}

	if income <= points[0].income(gender) {
		return 1, true
	}
	if income >= points[len(points)-1].income(gender) {
		return 100, true
	}

	for i := 0; i < len(points)-1; i++ {
		cur, next := points[i], points[i+1]
		lo, hi := cur.income(gender), next.income(gender)
		if income >= lo && income <= hi {
			ratio := (income - lo) / (hi - lo)
			pct := float64(cur.percentile) + ratio*float64(next.percentile-cur.percentile)
			return int(math.Round(pct)), true
		}
	}
	return 0, false
}

// IncomeForPercentile is the inverse of PercentileForIncome.
func (m *IncomeMapper) IncomeForPercentile(percentile float64, gender domain.Gender) (float64, bool) {
	if !finite(percentile) {
		m.logger.Warn().Float64("percentile", percentile).Msg("non-finite percentile rejected")
		return 0, false
	}
	if percentile < 1 || percentile > 100 {
		m.logger.Warn().Float64("percentile", percentile).Msg("percentile out of range")
		return 0, false
	}
	points := m.table()
	if len(points) == 0 {
		return 0, false
	}

	for _, pt := range points {
		if float64(pt.percentile) == percentile {
			return pt.income(gender), true
		}
	}

	for i := 0; i < len(points)-1; i++ {
		cur, next := points[i], points[i+1]
		if percentile >= float64(cur.percentile) && percentile <= float64(next.percentile) {
			ratio := (percentile - float64(cur.percentile)) / float64(next.percentile-cur.percentile)
			lo, hi := cur.income(gender), next.income(gender)
			return lo + ratio*(hi-lo), true
		}
	}
	return 0, false
}

// IncomeRange returns a ±5% display band around a tabulated percentile's income.
func (m *IncomeMapper) IncomeRange(percentile int, gender domain.Gender) (low, high float64, ok bool) {
	for _, pt := range m.table() {
		if pt.percentile != percentile {
			continue
		}
		income := decimal.NewFromFloat(pt.income(gender))
		low, _ = income.Mul(decimal.RequireFromString("0.95")).Float64()
		high, _ = income.Mul(decimal.RequireFromString("1.05")).Float64()
		return low, high, true
	}
	return 0, 0, false
}

// InvalidIncome is what FormatIncome renders for NaN and infinite amounts.
const InvalidIncome = "$?"

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// exact converts f to a decimal holding its full binary value, so halves
// round the way the stored float actually lies (1.15 is stored below 1.15).
func exact(f float64) decimal.Decimal {
	return decimal.NewFromFloatWithExponent(f, -1074)
}

// FormatIncome renders an income compactly: "$500", "$9.9k", "$57k", "$1.5M".
// The scaled value is rounded half away from zero on its exact binary value.
func FormatIncome(income float64) string {
	if !finite(income) {
		return InvalidIncome
	}
	switch {
	case income < 1_000:
		return "$" + exact(income).Round(0).String()
	case income < 1_000_000:
		places := int32(0)
		if income < 10_000 {
			places = 1
		}
		return "$" + exact(income/1_000).StringFixed(places) + "k"
	default:
		return "$" + exact(income/1_000_000).StringFixed(1) + "M"
	}
}
