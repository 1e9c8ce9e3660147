// Package expectancy resolves life-expectancy estimates from the country and
// income-percentile tables, and maps between incomes and percentiles.
package expectancy

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/lifeclock/internal/dataset"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rs/zerolog"
)

const (
	// GlobalAverageLifeExpectancy is used when a country is not in the table.
	GlobalAverageLifeExpectancy = 73.0

	// USCountryCode is the only country the income table covers.
	USCountryCode = "USA"
)

// Resolver looks up life expectancy by country or by US income percentile.
// None of its methods fail: missing data degrades to a fallback value.
type Resolver struct {
	store  *dataset.Store
	logger zerolog.Logger
}

// NewResolver creates a resolver backed by store.
func NewResolver(store *dataset.Store) *Resolver {
	return &Resolver{store: store, logger: zerolog.Nop()}
}

// SetLogger sets the logger for warnings. nil restores the no-op logger.
func (r *Resolver) SetLogger(logger *zerolog.Logger) {
	if logger == nil {
		r.logger = zerolog.Nop()
		return
	}
	r.logger = logger.With().Str("component", "resolver").Logger()
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *Resolver) countries() map[string]domain.CountryLifeExpectancy {
	table, err := r.store.Countries()
	if err != nil {
		return nil
	}
	return table
}

// ForCountry returns the table value for a country and gender. Gender other
// uses the dataset's combined column.
func (r *Resolver) ForCountry(code string, gender domain.Gender) (float64, bool) {
	entry, ok := r.countries()[normalizeCode(code)]
	if !ok {
		return 0, false
	}
	switch gender {
	case domain.GenderMale:
		return entry.Male, true
	case domain.GenderFemale:
		return entry.Female, true
	default:
		return entry.Both, true
	}
}

// ForCountryWithFallback is ForCountry with the global average for unknown countries.
func (r *Resolver) ForCountryWithFallback(code string, gender domain.Gender) float64 {
	if years, ok := r.ForCountry(code, gender); ok {
		return years
	}
	return GlobalAverageLifeExpectancy
}

// ForIncome returns the income-table value for a gender and percentile.
// The percentile must be a whole number in [1, 100]. Gender other averages
// the male and female rows because the table has no combined column.
func (r *Resolver) ForIncome(gender domain.Gender, percentile float64) (float64, bool) {
	if percentile < 1 || percentile > 100 || percentile != math.Trunc(percentile) {
		r.logger.Warn().Float64("percentile", percentile).Msgf("Invalid percentile: %v", percentile)
		return 0, false
	}
	table, err := r.store.Income()
	if err != nil {
		return 0, false
	}
	p := int(percentile)

	if gender == domain.GenderOther {
		male, okM := table.Lookup("M", p)
		female, okF := table.Lookup("F", p)
		if !okM || !okF {
			r.logger.Error().Str("gender", string(gender)).Int("percentile", p).Msg("no income data found")
			return 0, false
		}
		return (male.LifeExpectancy + female.LifeExpectancy) / 2, true
	}

	code := domain.GenderMale.Code()
	if gender == domain.GenderFemale {
		code = domain.GenderFemale.Code()
	}
	row, ok := table.Lookup(code, p)
	if !ok {
		r.logger.Error().Str("gender", string(gender)).Int("percentile", p).Msg("no income data found")
		return 0, false
	}
	return row.LifeExpectancy, true
}

// Resolve picks the best estimate for a profile: the income table for US
// profiles with a percentile, the country table otherwise, and the global
// average when neither has data.
func (r *Resolver) Resolve(profile domain.Profile) domain.LifeExpectancyResult {
	country := normalizeCode(profile.Country)

	source := ResolveSource(country, profile.IncomePercentile)
	if source.Kind == domain.SourceIncome {
		if years, ok := r.ForIncome(profile.Gender, float64(*profile.IncomePercentile)); ok {
			source.Detail.Gender = profile.Gender
			return domain.LifeExpectancyResult{Years: years, Source: source}
		}
		r.logger.Debug().Str("country", country).Msg("income lookup unavailable, using country data")
		source = ResolveSource(country, nil)
	}

	source.Detail.Gender = profile.Gender
	return domain.LifeExpectancyResult{
		Years:  r.ForCountryWithFallback(country, profile.Gender),
		Source: source,
	}
}

// ResolveSource decides which dataset applies. Only a US profile with a
// percentile uses income data. An empty country yields a global descriptor.
func ResolveSource(country string, incomePercentile *int) domain.LifeExpectancySource {
	if country == USCountryCode && incomePercentile != nil {
		p := *incomePercentile
		return domain.LifeExpectancySource{
			Kind:        domain.SourceIncome,
			DatasetName: dataset.IncomeDatasetName,
			Description: "US income data (" + Ordinal(p) + " percentile)",
			Detail: &domain.SourceDetail{
				Country:          country,
				IncomePercentile: &p,
			},
		}
	}

	description := "Global country data"
	if country != "" {
		description = country + " country data"
	}
	return domain.LifeExpectancySource{
		Kind:        domain.SourceCountry,
		DatasetName: dataset.CountryDatasetName,
		Description: description,
		Detail:      &domain.SourceDetail{Country: country},
	}
}

// Country is an entry of the country picker.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CountryList returns every country sorted by name.
func (r *Resolver) CountryList() []Country {
	table := r.countries()
	list := make([]Country, 0, len(table))
	for code, entry := range table {
		list = append(list, Country{Code: code, Name: entry.CountryName})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// CountryName returns the display name for a code.
func (r *Resolver) CountryName(code string) (string, bool) {
	entry, ok := r.countries()[normalizeCode(code)]
	return entry.CountryName, ok
}

// IsValidCountryCode reports whether the code is in the table.
func (r *Resolver) IsValidCountryCode(code string) bool {
	_, ok := r.countries()[normalizeCode(code)]
	return ok
}

// Statistics summarises the combined column of the country table.
type Statistics struct {
	TotalCountries int     `json:"total_countries"`
	Highest        float64 `json:"highest"`
	Lowest         float64 `json:"lowest"`
	Average        float64 `json:"average"`
}

// Statistics returns zero values when the table is unavailable.
func (r *Resolver) Statistics() Statistics {
	table := r.countries()
	if len(table) == 0 {
		return Statistics{}
	}
	stats := Statistics{TotalCountries: len(table), Highest: math.Inf(-1), Lowest: math.Inf(1)}
	var sum float64
	for _, entry := range table {
		stats.Highest = math.Max(stats.Highest, entry.Both)
		stats.Lowest = math.Min(stats.Lowest, entry.Both)
		sum += entry.Both
	}
	stats.Average = sum / float64(len(table))
	return stats
}

// Ordinal renders 1 as "1st", 2 as "2nd", 11 as "11th" and so on.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
