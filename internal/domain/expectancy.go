package domain

// CountryLifeExpectancy is one row of the country table, in years.
type CountryLifeExpectancy struct {
	CountryName string  `json:"countryName"`
	Male        float64 `json:"male"`
	Female      float64 `json:"female"`
	Both        float64 `json:"both"`
}

// IncomeLifeExpectancy is one row of the income-percentile table.
type IncomeLifeExpectancy struct {
	GenderCode          string  `json:"gnd"`
	Percentile          int     `json:"pctile"`
	Count               float64 `json:"count"`
	HouseholdIncome     float64 `json:"hh_inc"`
	HouseholdIncomeAt40 float64 `json:"hh_inc_age40"`
	LifeExpectancy      float64 `json:"le_agg"`
	RaceAdjusted        float64 `json:"le_raceadj"`
	StdDev              float64 `json:"sd_le_agg"`
	StdDevRaceAdjusted  float64 `json:"sd_le_raceadj"`
}

// SourceKind identifies which dataset produced an estimate.
type SourceKind string

const (
	SourceCountry SourceKind = "country"
	SourceIncome  SourceKind = "income"
)

// SourceDetail carries the inputs that selected a dataset row.
type SourceDetail struct {
	Country          string `json:"country,omitempty"`
	IncomePercentile *int   `json:"income_percentile,omitempty"`
	Gender           Gender `json:"gender,omitempty"`
}

// LifeExpectancySource describes where a life-expectancy figure came from.
type LifeExpectancySource struct {
	Kind        SourceKind    `json:"kind"`
	DatasetName string        `json:"dataset_name"`
	Description string        `json:"description"`
	Detail      *SourceDetail `json:"detail,omitempty"`
}

// LifeExpectancyResult pairs an estimate with its provenance.
type LifeExpectancyResult struct {
	Years  float64              `json:"years"`
	Source LifeExpectancySource `json:"source"`
}
