package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LIFECLOCK_PROFILE", "LIFECLOCK_LOG_DIR", "LIFECLOCK_GRANULARITY", "LIFECLOCK_TICK", "LIFECLOCK_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := LoadSettings("", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityYears, s.Granularity)
	assert.Equal(t, time.Second, s.Tick)
	assert.False(t, s.Verbose)
	assert.Equal(t, "profile.yaml", filepath.Base(s.ProfilePath))
}

func TestLoadSettings_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIFECLOCK_GRANULARITY", "weeks")
	t.Setenv("LIFECLOCK_TICK", "500ms")
	t.Setenv("LIFECLOCK_LOG_DIR", "/tmp/lifeclock-logs")

	s, err := LoadSettings("", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityWeeks, s.Granularity)
	assert.Equal(t, 500*time.Millisecond, s.Tick)
	assert.Equal(t, "/tmp/lifeclock-logs", s.LogDir)
}

func TestLoadSettings_DotEnvAndFlags(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LIFECLOCK_PROFILE=/from/dotenv.yaml\nLIFECLOCK_GRANULARITY=months\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("LIFECLOCK_PROFILE")
		os.Unsetenv("LIFECLOCK_GRANULARITY")
	})

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("granularity", "years", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--granularity", "weeks", "--verbose"}))

	s, err := LoadSettings(envFile, flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv.yaml", s.ProfilePath)
	assert.Equal(t, domain.GranularityWeeks, s.Granularity)
	assert.True(t, s.Verbose)
}

func TestLoadSettings_MissingDotEnvIgnored(t *testing.T) {
	clearEnv(t)
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.env"), nil)
	assert.NoError(t, err)
}

func TestLoadSettings_Invalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIFECLOCK_GRANULARITY", "days")

	_, err := LoadSettings("", nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	t.Setenv("LIFECLOCK_GRANULARITY", "years")
	t.Setenv("LIFECLOCK_TICK", "10ms")
	_, err = LoadSettings("", nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
