package domain

import (
	"fmt"
	"strings"
)

// Granularity is the size of one timeline grid cell.
type Granularity string

const (
	GranularityYears  Granularity = "years"
	GranularityMonths Granularity = "months"
	GranularityWeeks  Granularity = "weeks"
)

// Granularities lists every granularity in display order.
var Granularities = []Granularity{GranularityYears, GranularityMonths, GranularityWeeks}

// ParseGranularity parses a granularity name, accepting singular forms.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "years", "year", "y":
		return GranularityYears, nil
	case "months", "month", "m":
		return GranularityMonths, nil
	case "weeks", "week", "w":
		return GranularityWeeks, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (expected years, months or weeks)", s)
	}
}

// TimeBreakdown is a duration split into calendar components.
type TimeBreakdown struct {
	Years        int   `json:"years"`
	Months       int   `json:"months"`
	Days         int   `json:"days"`
	Hours        int   `json:"hours"`
	Minutes      int   `json:"minutes"`
	Seconds      int   `json:"seconds"`
	TotalSeconds int64 `json:"total_seconds"`
}

// IsZero reports whether every component is zero.
func (b TimeBreakdown) IsZero() bool {
	return b == TimeBreakdown{}
}

// TimelineUnit is a single cell of the life grid.
type TimelineUnit struct {
	Index       int    `json:"index"`
	IsLived     bool   `json:"is_lived"`
	IsCurrent   bool   `json:"is_current"`
	IsPreBirth  bool   `json:"is_pre_birth"`
	Label       string `json:"label"`
	DetailsText string `json:"details_text"`
	Age         int    `json:"age"`
}

// State names the single classification a unit falls into.
func (u TimelineUnit) State() string {
	switch {
	case u.IsPreBirth:
		return "pre-birth"
	case u.IsCurrent:
		return "current"
	case u.IsLived:
		return "lived"
	default:
		return "future"
	}
}

// GridLayout summarises a unit sequence. CurrentUnit is -1 when no unit is current.
type GridLayout struct {
	Rows             int     `json:"rows"`
	Columns          int     `json:"columns"`
	TotalUnits       int     `json:"total_units"`
	LivedUnits       int     `json:"lived_units"`
	RemainingUnits   int     `json:"remaining_units"`
	CurrentUnit      int     `json:"current_unit"`
	PercentComplete  float64 `json:"percent_complete"`
	ActualYears      *int    `json:"actual_years,omitempty"`
	ActualTotalYears *int    `json:"actual_total_years,omitempty"`
}

// TimelineData is the complete output of the grid builder.
type TimelineData struct {
	Granularity Granularity    `json:"granularity"`
	Layout      GridLayout     `json:"layout"`
	Units       []TimelineUnit `json:"units"`
}
