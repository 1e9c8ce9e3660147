package domain

import (
	"fmt"
	"strings"
)

// MilestoneType is a kind of recurring life event.
type MilestoneType string

const (
	MilestoneBirthdays MilestoneType = "birthdays"
	MilestoneSummers   MilestoneType = "summers"
	MilestoneWinters   MilestoneType = "winters"
	MilestoneSpring    MilestoneType = "spring"
	MilestoneFall      MilestoneType = "fall"
	MilestoneWeekends  MilestoneType = "weekends"
	MilestoneHolidays  MilestoneType = "holidays"
)

// MilestoneTypes lists the selectable types in display order.
var MilestoneTypes = []MilestoneType{
	MilestoneBirthdays,
	MilestoneSummers,
	MilestoneWinters,
	MilestoneSpring,
	MilestoneFall,
	MilestoneWeekends,
	MilestoneHolidays,
}

// ParseMilestoneType validates a milestone type name.
func ParseMilestoneType(s string) (MilestoneType, error) {
	t := MilestoneType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range MilestoneTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown milestone type %q", s)
}

// Milestone is a counted number of remaining occurrences of an event.
type Milestone struct {
	ID          string        `json:"id"`
	Type        MilestoneType `json:"type"`
	Label       string        `json:"label"`
	Icon        string        `json:"icon"`
	Count       int           `json:"count"`
	Description string        `json:"description"`
}

// HolidayKind says how a holiday's date is determined.
type HolidayKind string

const (
	HolidayFixed      HolidayKind = "fixed"
	HolidayCalculated HolidayKind = "calculated"
	HolidayCustom     HolidayKind = "custom"
)

// HolidayCalc names one of the built-in movable-date algorithms.
type HolidayCalc int

const (
	HolidayCalcNone HolidayCalc = iota
	HolidayCalcEaster
	HolidayCalcThanksgiving
)

var holidayCalcNames = map[string]HolidayCalc{
	"calculateEaster":       HolidayCalcEaster,
	"easter":                HolidayCalcEaster,
	"calculateThanksgiving": HolidayCalcThanksgiving,
	"thanksgiving":          HolidayCalcThanksgiving,
}

func (c HolidayCalc) String() string {
	switch c {
	case HolidayCalcEaster:
		return "calculateEaster"
	case HolidayCalcThanksgiving:
		return "calculateThanksgiving"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c HolidayCalc) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText rejects names that have no algorithm, so a loaded
// definition can never reference a missing calculation.
func (c *HolidayCalc) UnmarshalText(text []byte) error {
	calc, ok := holidayCalcNames[string(text)]
	if !ok {
		return fmt.Errorf("unknown holiday calculation %q", string(text))
	}
	*c = calc
	return nil
}

// HolidayDefinition is static holiday configuration. Date is "MM/DD" for
// fixed and custom holidays; Calc is set for calculated ones.
type HolidayDefinition struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Icon string      `json:"icon"`
	Kind HolidayKind `json:"type,omitempty"`
	Date string      `json:"date,omitempty"`
	Calc HolidayCalc `json:"calculateFn,omitempty"`
}

// HolidaySet is the on-disk holiday catalogue.
type HolidaySet struct {
	Fixed      []HolidayDefinition `json:"fixed"`
	Calculated []HolidayDefinition `json:"calculated"`
}

// All returns fixed holidays followed by calculated ones.
func (s HolidaySet) All() []HolidayDefinition {
	all := make([]HolidayDefinition, 0, len(s.Fixed)+len(s.Calculated))
	all = append(all, s.Fixed...)
	return append(all, s.Calculated...)
}

// Find looks up a holiday by ID.
func (s HolidaySet) Find(id string) (HolidayDefinition, bool) {
	for _, h := range s.All() {
		if h.ID == id {
			return h, true
		}
	}
	return HolidayDefinition{}, false
}
