package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the profile file format written by SaveToFile.
const CurrentVersion = 1

// ProfileFile is the persisted blob: the profile, the outlook preferences and
// a last-updated stamp.
type ProfileFile struct {
	Version     int                       `yaml:"version"`
	Profile     domain.Profile            `yaml:"profile"`
	Outlook     domain.OutlookPreferences `yaml:"outlook"`
	LastUpdated time.Time                 `yaml:"last_updated,omitempty"`
}

// NewProfileFile wraps a profile with default outlook preferences.
func NewProfileFile(profile domain.Profile) *ProfileFile {
	return &ProfileFile{
		Version: CurrentVersion,
		Profile: profile,
		Outlook: domain.DefaultOutlookPreferences(),
	}
}

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InputParser loads, validates and saves profile files.
type InputParser struct {
	// CountryKnown, when set, rejects country codes it returns false for.
	CountryKnown func(code string) bool
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultProfilePath is ~/.config/lifeclock/profile.yaml.
func DefaultProfilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "lifeclock", "profile.yaml"), nil
}

// LoadFromFile reads and validates a profile file.
func (ip *InputParser) LoadFromFile(filename string, now time.Time) (*ProfileFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, now)
}

// Parse decodes YAML and validates the result. A missing version is read as 1.
func (ip *InputParser) Parse(data []byte, now time.Time) (*ProfileFile, error) {
	var file ProfileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if file.Version == 0 {
		file.Version = CurrentVersion
	}
	file.Profile.Country = strings.ToUpper(strings.TrimSpace(file.Profile.Country))
	normalizeOutlook(&file.Outlook)

	if err := ip.Validate(&file, now); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &file, nil
}

// Validate checks every field of the blob against now.
func (ip *InputParser) Validate(file *ProfileFile, now time.Time) error {
	if file.Version != CurrentVersion {
		return invalid("version", "unsupported version %d", file.Version)
	}
	if err := ip.ValidateProfile(file.Profile, now); err != nil {
		return err
	}
	return validateOutlook(file.Outlook)
}

// ValidateProfile checks the profile fields alone.
func (ip *InputParser) ValidateProfile(p domain.Profile, now time.Time) error {
	if p.BirthDate.IsZero() {
		return invalid("profile.birth_date", "birth date is required")
	}
	if p.BirthDate.After(now) {
		return invalid("profile.birth_date", "birth date %s is in the future", p.BirthDate.Format(time.DateOnly))
	}
	if now.Year()-p.BirthDate.Year() > 130 {
		return invalid("profile.birth_date", "birth date %s is more than 130 years ago", p.BirthDate.Format(time.DateOnly))
	}
	if !p.Gender.Valid() {
		return invalid("profile.gender", "unknown gender %q", p.Gender)
	}
	if p.Country == "" {
		return invalid("profile.country", "country is required")
	}
	if ip.CountryKnown != nil && !ip.CountryKnown(p.Country) {
		return invalid("profile.country", "unknown country code %q", p.Country)
	}
	if p.IncomePercentile != nil {
		pct := *p.IncomePercentile
		if pct < 1 || pct > 100 {
			return invalid("profile.income_percentile", "percentile must be between 1 and 100, got %d", pct)
		}
		if p.Country != "USA" {
			return invalid("profile.income_percentile", "income data is only available for USA")
		}
	}
	return nil
}

// normalizeOutlook stores milestone types in their canonical spelling and
// trims holiday ids. Unknown types are left for validateOutlook to report.
func normalizeOutlook(o *domain.OutlookPreferences) {
	for i, t := range o.SelectedMilestones {
		if canonical, err := domain.ParseMilestoneType(string(t)); err == nil {
			o.SelectedMilestones[i] = canonical
		}
	}
	for i, id := range o.SelectedHolidays {
		o.SelectedHolidays[i] = strings.TrimSpace(id)
	}
}

func validateOutlook(o domain.OutlookPreferences) error {
	for i, t := range o.SelectedMilestones {
		if _, err := domain.ParseMilestoneType(string(t)); err != nil {
			return invalid(fmt.Sprintf("outlook.selected_milestones[%d]", i), "%v", err)
		}
	}
	seen := make(map[string]bool, len(o.SelectedHolidays))
	for i, id := range o.SelectedHolidays {
		if strings.TrimSpace(id) == "" {
			return invalid(fmt.Sprintf("outlook.selected_holidays[%d]", i), "holiday id is empty")
		}
		if seen[id] {
			return invalid(fmt.Sprintf("outlook.selected_holidays[%d]", i), "duplicate holiday %q", id)
		}
		seen[id] = true
	}
	return nil
}

// SaveToFile stamps LastUpdated, validates and writes the blob, creating the
// parent directory if needed.
func (ip *InputParser) SaveToFile(filename string, file *ProfileFile, now time.Time) error {
	file.Version = CurrentVersion
	file.LastUpdated = now.UTC().Truncate(time.Second)
	if err := ip.Validate(file, now); err != nil {
		return fmt.Errorf("refusing to save invalid profile: %w", err)
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(filename), err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
