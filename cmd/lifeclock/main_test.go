package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNow = "2026-01-01"

// run executes a fresh command tree against a temporary profile and log
// directory and returns what it printed to stdout.
func run(t *testing.T, profile string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	base := []string{"--profile", profile, "--log-dir", t.TempDir(), "--env-file", "", "--now", testNow}
	cmd.SetArgs(append(args, base...))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

// initProfile writes a US female profile at the 50th income percentile.
func initProfile(t *testing.T, extra ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	args := append([]string{"profile", "init", "--birth", "2000-06-15", "--gender", "female", "--country", "usa", "--percentile", "50"}, extra...)
	out, err := run(t, path, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Profile written to "+path)
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "lifeclock", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "profile", "clock", "timeline", "milestones", "expectancy", "income", "export", "tui"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"profile", "log-dir", "verbose", "now", "granularity", "tick", "env-file"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := run(t, "unused.yaml", "invalid-command")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "unused.yaml", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lifeclock dev (commit none, built unknown)")
}

func TestParseNow(t *testing.T) {
	got, pinned, err := parseNow("2026-01-01T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, pinned)
	assert.Equal(t, time.Date(2026, time.January, 1, 10, 30, 0, 0, time.UTC), got.UTC())

	got, pinned, err = parseNow("2026-01-01")
	require.NoError(t, err)
	assert.True(t, pinned)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local), got)

	_, pinned, err = parseNow("")
	require.NoError(t, err)
	assert.False(t, pinned)

	_, _, err = parseNow("yesterday")
	assert.ErrorContains(t, err, "invalid --now")
}

func TestInvalidNowFlag(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"clock", "--now", "soon", "--log-dir", t.TempDir(), "--env-file", ""})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, cmd.Execute(), "invalid --now")
}

func TestProfileLifecycle(t *testing.T) {
	path := initProfile(t)

	_, err := run(t, path, "profile", "init", "--birth", "2000-06-15")
	assert.ErrorContains(t, err, "already exists")

	out, err := run(t, path, "profile", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = run(t, path, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "country: USA")
	assert.Contains(t, out, "income_percentile: 50")
	assert.Contains(t, out, "85.0 years (Health Inequality Project: US income data (50th percentile))")
}

func TestProfileInitRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, filepath.Join(dir, "a.yaml"), "profile", "init", "--birth", "15/06/2000")
	assert.ErrorContains(t, err, "invalid --birth")

	_, err = run(t, filepath.Join(dir, "b.yaml"), "profile", "init", "--birth", "2030-01-01")
	assert.ErrorContains(t, err, "in the future")

	_, err = run(t, filepath.Join(dir, "c.yaml"), "profile", "init", "--birth", "2000-06-15", "--country", "ZZZ")
	assert.ErrorContains(t, err, "unknown country")

	_, err = run(t, filepath.Join(dir, "d.yaml"), "profile", "init", "--birth", "2000-06-15", "--country", "JPN", "--percentile", "50")
	assert.ErrorContains(t, err, "only available for USA")

	_, err = run(t, filepath.Join(dir, "e.yaml"), "profile", "init", "--birth", "2000-06-15", "--milestones", "decades")
	assert.ErrorContains(t, err, "unknown milestone type")

	_, err = os.Stat(filepath.Join(dir, "c.yaml"))
	assert.True(t, os.IsNotExist(err), "invalid profiles are never written")
}

func TestProfileInitFromIncome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	_, err := run(t, path, "profile", "init", "--birth", "1990-01-01", "--gender", "male", "--income", "61300")
	require.NoError(t, err)

	out, err := run(t, path, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "income_percentile: 50")
}

func TestMissingProfile(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "missing.yaml"), "clock")
	assert.ErrorContains(t, err, "lifeclock profile init")
}

func TestClockCommand(t *testing.T) {
	path := initProfile(t)

	out, err := run(t, path, "clock")
	require.NoError(t, err)
	assert.Contains(t, out, "LIFE CLOCK")
	assert.Contains(t, out, "Time remaining")

	out, err = run(t, path, "clock", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Clock struct {
			LifeExpectancy float64 `json:"life_expectancy"`
			Lived          struct {
				Years  int `json:"years"`
				Months int `json:"months"`
			} `json:"lived"`
		} `json:"clock"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.InDelta(t, 84.98, decoded.Clock.LifeExpectancy, 1e-9)
	assert.Equal(t, 25, decoded.Clock.Lived.Years)
	assert.Equal(t, 6, decoded.Clock.Lived.Months)

	_, err = run(t, path, "clock", "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestTimelineCommand(t *testing.T) {
	path := initProfile(t)

	out, err := run(t, path, "timeline", "--granularity", "weeks", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Timelines []struct {
			Granularity string `json:"granularity"`
			Layout      struct {
				CurrentUnit int `json:"current_unit"`
				Columns     int `json:"columns"`
			} `json:"layout"`
		} `json:"timelines"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Timelines, 1)
	assert.Equal(t, "weeks", decoded.Timelines[0].Granularity)
	assert.Equal(t, 52, decoded.Timelines[0].Layout.Columns)
	assert.Equal(t, 1333, decoded.Timelines[0].Layout.CurrentUnit)

	out, err = run(t, path, "timeline")
	require.NoError(t, err)
	assert.Contains(t, out, "Years of your life")

	_, err = run(t, path, "timeline", "--granularity", "decades")
	assert.ErrorContains(t, err, "granularity")
}

func TestMilestonesCommand(t *testing.T) {
	path := initProfile(t, "--milestones", "birthdays,weekends", "--holidays", "christmas")

	out, err := run(t, path, "milestones", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Milestones []struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		} `json:"milestones"`
		Tagline string `json:"tagline"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Milestones, 3)
	assert.Equal(t, "birthdays", decoded.Milestones[0].ID)
	assert.Equal(t, "weekends", decoded.Milestones[1].ID)
	assert.Equal(t, "holiday-christmas", decoded.Milestones[2].ID)
	for _, m := range decoded.Milestones {
		assert.Positive(t, m.Count, m.ID)
	}
	assert.NotEmpty(t, decoded.Tagline)
}

func TestExportCommand(t *testing.T) {
	path := initProfile(t, "--holidays", "christmas")

	out, err := run(t, path, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "Birthday: turning 26")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20261225")

	out, err = run(t, path, "export", "--format", "json", "--all")
	require.NoError(t, err)
	var decoded struct {
		Timelines []struct {
			Granularity string `json:"granularity"`
		} `json:"timelines"`
		Events []json.RawMessage `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Timelines, 3)
	assert.Equal(t, "years", decoded.Timelines[0].Granularity)
	assert.Equal(t, "months", decoded.Timelines[1].Granularity)
	assert.Equal(t, "weeks", decoded.Timelines[2].Granularity)
	assert.NotEmpty(t, decoded.Events)

	_, err = run(t, path, "export", "--all")
	assert.ErrorContains(t, err, "--all requires --format json")

	_, err = run(t, path, "export", "--format", "csv")
	assert.ErrorContains(t, err, "export supports ics and json")
}

func TestExportToDirectory(t *testing.T) {
	path := initProfile(t)
	dir := t.TempDir()

	out, err := run(t, path, "export", "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")

	files, err := filepath.Glob(filepath.Join(dir, "lifeclock_*.ics"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestExpectancyCommand(t *testing.T) {
	out, err := run(t, "unused.yaml", "expectancy", "--country", "usa", "--gender", "female", "--percentile", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "84.98 years")
	assert.Contains(t, out, "US income data (50th percentile)")

	out, err = run(t, "unused.yaml", "expectancy", "--country", "JPN")
	require.NoError(t, err)
	assert.Contains(t, out, "WHO: JPN country data")

	out, err = run(t, "unused.yaml", "expectancy", "--country", "ZZZ", "--gender", "male")
	require.NoError(t, err)
	assert.Contains(t, out, "73.00 years")
	assert.Contains(t, out, "global default")

	out, err = run(t, "unused.yaml", "expectancy", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "USA  ")
	assert.Contains(t, out, "countries, highest")

	_, err = run(t, "unused.yaml", "expectancy", "--gender", "x")
	assert.ErrorContains(t, err, "unknown gender")
}

func TestIncomeCommand(t *testing.T) {
	out, err := run(t, "unused.yaml", "income", "--percentile", "50", "--gender", "male")
	require.NoError(t, err)
	assert.Contains(t, out, "The 50th percentile earns about $61k")
	assert.Contains(t, out, "Range: $58k - $64k")

	out, err = run(t, "unused.yaml", "income", "--amount", "61300", "--gender", "male")
	require.NoError(t, err)
	assert.Contains(t, out, "$61k is the 50th percentile")

	_, err = run(t, "unused.yaml", "income", "--amount", "-5")
	assert.ErrorContains(t, err, "cannot map income")

	_, err = run(t, "unused.yaml", "income", "--amount", "NaN")
	assert.ErrorContains(t, err, "cannot map income $?")

	_, err = run(t, "unused.yaml", "income", "--percentile", "101")
	assert.ErrorContains(t, err, "out of range")

	_, err = run(t, "unused.yaml", "income")
	assert.ErrorContains(t, err, "--amount or --percentile")
}
