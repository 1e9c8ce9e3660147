package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are process-level options, as opposed to the user's profile.
type Settings struct {
	ProfilePath string
	LogDir      string
	Granularity domain.Granularity
	Tick        time.Duration
	Verbose     bool
}

// EnvPrefix namespaces environment variables, e.g. LIFECLOCK_PROFILE.
const EnvPrefix = "LIFECLOCK"

// LoadSettings resolves settings from defaults, an optional .env file, the
// environment and finally flags. Flags must be named after the mapstructure
// keys ("profile", "log-dir" or "log_dir", ...). A missing envFile is fine.
func LoadSettings(envFile string, flags *pflag.FlagSet) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	defaultProfile, err := DefaultProfilePath()
	if err != nil {
		defaultProfile = "profile.yaml"
	}
	v.SetDefault("profile", defaultProfile)
	v.SetDefault("log_dir", "")
	v.SetDefault("granularity", string(domain.GranularityYears))
	v.SetDefault("tick", time.Second)
	v.SetDefault("verbose", false)

	if flags != nil {
		for key, name := range map[string]string{
			"profile":     "profile",
			"log_dir":     "log-dir",
			"granularity": "granularity",
			"tick":        "tick",
			"verbose":     "verbose",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	g, err := domain.ParseGranularity(v.GetString("granularity"))
	if err != nil {
		return nil, &ValidationError{Field: "granularity", Reason: err.Error()}
	}
	tick := v.GetDuration("tick")
	if tick < 100*time.Millisecond {
		return nil, &ValidationError{Field: "tick", Reason: fmt.Sprintf("tick %s is shorter than 100ms", tick)}
	}

	return &Settings{
		ProfilePath: v.GetString("profile"),
		LogDir:      v.GetString("log_dir"),
		Granularity: g,
		Tick:        tick,
		Verbose:     v.GetBool("verbose"),
	}, nil
}
