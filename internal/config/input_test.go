package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)

const validYAML = `
version: 1
profile:
  birth_date: 2000-06-15
  gender: female
  country: usa
  income_percentile: 50
outlook:
  selected_milestones: [birthdays, summers, holidays]
  selected_holidays: [christmas, easter]
  show_motivational: true
`

func intPtr(v int) *int { return &v }

func TestParse_Valid(t *testing.T) {
	file, err := NewInputParser().Parse([]byte(validYAML), now)
	require.NoError(t, err)

	assert.Equal(t, 1, file.Version)
	assert.Equal(t, time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC), file.Profile.BirthDate)
	assert.Equal(t, domain.GenderFemale, file.Profile.Gender)
	assert.Equal(t, "USA", file.Profile.Country)
	require.NotNil(t, file.Profile.IncomePercentile)
	assert.Equal(t, 50, *file.Profile.IncomePercentile)
	assert.Equal(t, []domain.MilestoneType{domain.MilestoneBirthdays, domain.MilestoneSummers, domain.MilestoneHolidays}, file.Outlook.SelectedMilestones)
	assert.Equal(t, []string{"christmas", "easter"}, file.Outlook.SelectedHolidays)
	assert.True(t, file.Outlook.ShowMotivational)
}

func TestParse_NormalizesOutlook(t *testing.T) {
	data := "profile: {birth_date: 1990-01-01, gender: male, country: USA}\n" +
		"outlook:\n  selected_milestones: [\" Summers \", BIRTHDAYS]\n  selected_holidays: [\" christmas \"]\n"
	file, err := NewInputParser().Parse([]byte(data), now)
	require.NoError(t, err)

	assert.Equal(t, []domain.MilestoneType{domain.MilestoneSummers, domain.MilestoneBirthdays}, file.Outlook.SelectedMilestones)
	assert.Equal(t, []string{"christmas"}, file.Outlook.SelectedHolidays)
}

func TestParse_MissingVersionIsOne(t *testing.T) {
	file, err := NewInputParser().Parse([]byte("profile:\n  birth_date: 1990-01-01\n  gender: male\n  country: JPN\n"), now)
	require.NoError(t, err)
	assert.Equal(t, 1, file.Version)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"future version", "version: 2\nprofile: {birth_date: 1990-01-01, gender: male, country: USA}\n", "version"},
		{"missing birth date", "profile: {gender: male, country: USA}\n", "profile.birth_date"},
		{"birth in future", "profile: {birth_date: 2030-01-01, gender: male, country: USA}\n", "profile.birth_date"},
		{"bad gender", "profile: {birth_date: 1990-01-01, gender: robot, country: USA}\n", "profile.gender"},
		{"missing country", "profile: {birth_date: 1990-01-01, gender: male}\n", "profile.country"},
		{"percentile out of range", "profile: {birth_date: 1990-01-01, gender: male, country: USA, income_percentile: 101}\n", "profile.income_percentile"},
		{"percentile outside us", "profile: {birth_date: 1990-01-01, gender: male, country: GBR, income_percentile: 40}\n", "profile.income_percentile"},
		{"unknown milestone", "profile: {birth_date: 1990-01-01, gender: male, country: USA}\noutlook: {selected_milestones: [eclipses]}\n", "outlook.selected_milestones[0]"},
		{"duplicate holiday", "profile: {birth_date: 1990-01-01, gender: male, country: USA}\noutlook: {selected_holidays: [easter, easter]}\n", "outlook.selected_holidays[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.yaml), now)
			require.Error(t, err)
			require.True(t, IsValidationError(err), "got %v", err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("profile: [unclosed"), now)
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

func TestValidateProfile_CountryKnown(t *testing.T) {
	parser := NewInputParser()
	parser.CountryKnown = func(code string) bool { return code == "USA" }

	profile := domain.Profile{BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Gender: domain.GenderOther, Country: "XYZ"}
	err := parser.ValidateProfile(profile, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown country code")

	profile.Country = "USA"
	assert.NoError(t, parser.ValidateProfile(profile, now))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")
	parser := NewInputParser()

	file := NewProfileFile(domain.Profile{
		BirthDate:        time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC),
		Gender:           domain.GenderMale,
		Country:          "USA",
		IncomePercentile: intPtr(75),
	})
	require.NoError(t, parser.SaveToFile(path, file, now))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "version: 1")
	assert.Contains(t, string(raw), "last_updated:")

	loaded, err := parser.LoadFromFile(path, now)
	require.NoError(t, err)
	assert.Equal(t, file.Profile.BirthDate, loaded.Profile.BirthDate)
	assert.Equal(t, 75, *loaded.Profile.IncomePercentile)
	assert.Equal(t, now, loaded.LastUpdated)
	assert.Equal(t, domain.DefaultOutlookPreferences().SelectedMilestones, loaded.Outlook.SelectedMilestones)
}

func TestSaveToFile_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	err := NewInputParser().SaveToFile(path, NewProfileFile(domain.Profile{Gender: domain.GenderMale, Country: "USA"}), now)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
