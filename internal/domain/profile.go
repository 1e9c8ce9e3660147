package domain

import (
	"fmt"
	"strings"
	"time"
)

// Gender selects which life-expectancy column applies to a person.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender accepts the long names and the dataset's single-letter codes.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "other", "o":
		return GenderOther, nil
	default:
		return "", fmt.Errorf("unknown gender %q (expected male, female or other)", s)
	}
}

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Code returns the income dataset code ("M" or "F"). Other has no code.
func (g Gender) Code() string {
	switch g {
	case GenderMale:
		return "M"
	case GenderFemale:
		return "F"
	default:
		return ""
	}
}

// Profile is the user's persisted input to every calculation.
type Profile struct {
	BirthDate        time.Time `yaml:"birth_date" json:"birth_date"`
	Gender           Gender    `yaml:"gender" json:"gender"`
	Country          string    `yaml:"country" json:"country"`
	IncomePercentile *int      `yaml:"income_percentile,omitempty" json:"income_percentile,omitempty"`
}

// OutlookPreferences controls which milestones are counted.
type OutlookPreferences struct {
	SelectedMilestones []MilestoneType `yaml:"selected_milestones" json:"selected_milestones"`
	SelectedHolidays   []string        `yaml:"selected_holidays" json:"selected_holidays"`
	ShowMotivational   bool            `yaml:"show_motivational" json:"show_motivational"`
}

// DefaultOutlookPreferences mirrors what a first-time user sees.
func DefaultOutlookPreferences() OutlookPreferences {
	return OutlookPreferences{
		SelectedMilestones: []MilestoneType{MilestoneBirthdays, MilestoneSummers, MilestoneWeekends},
		SelectedHolidays:   []string{},
		ShowMotivational:   true,
	}
}
