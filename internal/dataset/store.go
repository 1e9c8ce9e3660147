package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rs/zerolog"
)

//go:embed data/life_expectancy.json data/income_life_expectancy.csv data/holidays.json
var embedded embed.FS

const (
	// IncomeRowCount is the exact number of rows the income table must hold.
	IncomeRowCount = 200

	// Dataset names reported in provenance descriptors.
	CountryDatasetName = "WHO"
	IncomeDatasetName  = "Health Inequality Project"
)

// ErrUnavailable is returned for a table that failed to load. The failure is
// remembered; the table is never parsed again.
var ErrUnavailable = errors.New("dataset unavailable")

// Sources holds the raw bytes of each table.
type Sources struct {
	Countries []byte
	Income    []byte
	Holidays  []byte
}

// EmbeddedSources returns the tables bundled into the binary.
func EmbeddedSources() Sources {
	read := func(name string) []byte {
		b, err := embedded.ReadFile(name)
		if err != nil {
			return nil
		}
		return b
	}
	return Sources{
		Countries: read("data/life_expectancy.json"),
		Income:    read("data/income_life_expectancy.csv"),
		Holidays:  read("data/holidays.json"),
	}
}

// Store parses each table on first use and caches the result for its
// lifetime. It is safe for concurrent use; construct it once at the
// composition root and share it.
type Store struct {
	src    Sources
	logger zerolog.Logger

	countryOnce sync.Once
	countries   map[string]domain.CountryLifeExpectancy
	countryErr  error

	incomeOnce sync.Once
	income     *IncomeTable
	incomeErr  error

	holidayOnce sync.Once
	holidays    domain.HolidaySet
	holidayErr  error
}

// NewStore creates a store over the embedded tables.
func NewStore() *Store {
	return NewStoreFromSources(EmbeddedSources())
}

// NewStoreFromSources creates a store over caller-supplied table bytes.
func NewStoreFromSources(src Sources) *Store {
	return &Store{src: src, logger: zerolog.Nop()}
}

// SetLogger sets the logger used for load failures. nil restores the no-op logger.
func (s *Store) SetLogger(logger *zerolog.Logger) {
	if logger == nil {
		s.logger = zerolog.Nop()
		return
	}
	s.logger = logger.With().Str("component", "dataset").Logger()
}

// Countries returns the country table keyed by ISO 3166-1 alpha-3 code.
func (s *Store) Countries() (map[string]domain.CountryLifeExpectancy, error) {
	s.countryOnce.Do(func() {
		s.countries, s.countryErr = parseCountries(s.src.Countries)
		if s.countryErr != nil {
			s.logger.Error().Err(s.countryErr).Msg("country table load failed")
			s.countryErr = fmt.Errorf("%w: %v", ErrUnavailable, s.countryErr)
		}
	})
	return s.countries, s.countryErr
}

// Income returns the income-percentile table.
func (s *Store) Income() (*IncomeTable, error) {
	s.incomeOnce.Do(func() {
		s.income, s.incomeErr = parseIncome(s.src.Income)
		if s.incomeErr != nil {
			s.logger.Error().Err(s.incomeErr).Msg("income table load failed")
			s.incomeErr = fmt.Errorf("%w: %v", ErrUnavailable, s.incomeErr)
		}
	})
	return s.income, s.incomeErr
}

// Holidays returns the holiday catalogue. Individual malformed entries are
// logged and dropped rather than failing the whole catalogue.
func (s *Store) Holidays() (domain.HolidaySet, error) {
	s.holidayOnce.Do(func() {
		s.holidays, s.holidayErr = parseHolidays(s.src.Holidays, s.logger)
		if s.holidayErr != nil {
			s.logger.Error().Err(s.holidayErr).Msg("holiday catalogue load failed")
			s.holidayErr = fmt.Errorf("%w: %v", ErrUnavailable, s.holidayErr)
		}
	})
	return s.holidays, s.holidayErr
}

func parseCountries(data []byte) (map[string]domain.CountryLifeExpectancy, error) {
	if len(data) == 0 {
		return nil, errors.New("country table is empty")
	}
	var table map[string]domain.CountryLifeExpectancy
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse country table: %w", err)
	}
	for code, entry := range table {
		for _, v := range []float64{entry.Male, entry.Female, entry.Both} {
			if v <= 0 || v >= 130 {
				return nil, fmt.Errorf("country %s: life expectancy %.2f out of range", code, v)
			}
		}
	}
	return table, nil
}

func parseHolidays(data []byte, logger zerolog.Logger) (domain.HolidaySet, error) {
	var raw struct {
		Fixed      []json.RawMessage `json:"fixed"`
		Calculated []json.RawMessage `json:"calculated"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.HolidaySet{}, fmt.Errorf("failed to parse holiday catalogue: %w", err)
	}

	decode := func(entries []json.RawMessage, kind domain.HolidayKind) []domain.HolidayDefinition {
		out := make([]domain.HolidayDefinition, 0, len(entries))
		for _, entry := range entries {
			var def domain.HolidayDefinition
			if err := json.Unmarshal(entry, &def); err != nil {
				logger.Warn().Err(err).Str("kind", string(kind)).Msg("skipping malformed holiday")
				continue
			}
			if def.ID == "" {
				logger.Warn().Str("kind", string(kind)).Msg("skipping holiday without id")
				continue
			}
			def.Kind = kind
			out = append(out, def)
		}
		return out
	}

	return domain.HolidaySet{
		Fixed:      decode(raw.Fixed, domain.HolidayFixed),
		Calculated: decode(raw.Calculated, domain.HolidayCalculated),
	}, nil
}
