package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/lifeclock/internal/config"
	"github.com/rgehrsitz/lifeclock/internal/dataset"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/expectancy"
	"github.com/rgehrsitz/lifeclock/internal/logging"
	"github.com/rgehrsitz/lifeclock/internal/milestone"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is the composition root shared by every command. It is built once in
// the root command's PersistentPreRunE.
type app struct {
	settings *config.Settings
	logger   zerolog.Logger
	now      time.Time
	pinned   bool

	store    *dataset.Store
	resolver *expectancy.Resolver
	mapper   *expectancy.IncomeMapper
	counter  *milestone.Counter
	parser   *config.InputParser
}

func newApp(settings *config.Settings, logger zerolog.Logger, now time.Time, pinned bool) *app {
	a := &app{
		settings: settings,
		logger:   logger,
		now:      now,
		pinned:   pinned,
		store:    dataset.NewStore(),
	}
	a.store.SetLogger(&logger)
	a.resolver = expectancy.NewResolver(a.store)
	a.resolver.SetLogger(&logger)
	a.mapper = expectancy.NewIncomeMapper(a.store)
	a.mapper.SetLogger(&logger)
	a.counter = milestone.NewCounter()
	a.counter.SetLogger(&logger)
	a.parser = config.NewInputParser()
	a.parser.CountryKnown = a.resolver.IsValidCountryCode
	return a
}

// loadProfile reads the configured profile file.
func (a *app) loadProfile() (*config.ProfileFile, error) {
	file, err := a.parser.LoadFromFile(a.settings.ProfilePath, a.now)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no profile at %s (run `lifeclock profile init` first): %w", a.settings.ProfilePath, err)
		}
		return nil, err
	}
	return file, nil
}

// parseNow accepts RFC 3339, a local date-time or a bare local date. An
// empty value means the wall clock.
func parseNow(s string) (time.Time, bool, error) {
	if s == "" {
		return time.Now(), false, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid --now %q (expected RFC3339 or YYYY-MM-DD)", s)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lifeclock %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newRootCmd builds the full command tree. Commands reach the shared app
// through the pointer the root's pre-run fills in.
func newRootCmd() *cobra.Command {
	var a app

	rootCmd := &cobra.Command{
		Use:           "lifeclock",
		Short:         "Life clock CLI",
		Long:          "Visualise a life as a grid of years, months or weeks and count what is still ahead",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			settings, err := config.LoadSettings(envFile, cmd.Flags())
			if err != nil {
				return err
			}

			console := cmd.ErrOrStderr()
			if cmd.Name() == "tui" {
				console = nil
			}
			logger, err := logging.Init(settings.Verbose, settings.LogDir, console)
			if err != nil {
				return err
			}

			nowFlag, _ := cmd.Flags().GetString("now")
			now, pinned, err := parseNow(nowFlag)
			if err != nil {
				return err
			}

			a = *newApp(settings, logger, now, pinned)
			a.logger.Debug().
				Str("command", cmd.CommandPath()).
				Str("profile", settings.ProfilePath).
				Time("now", now).
				Msg("starting")
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("profile", "", "Profile file (default ~/.config/lifeclock/profile.yaml)")
	flags.String("log-dir", "", "Directory for the rotating log file")
	flags.BoolP("verbose", "v", false, "Debug logging")
	flags.String("now", "", "Pin the reference instant (RFC3339 or YYYY-MM-DD)")
	flags.StringP("granularity", "g", string(domain.GranularityYears), "Grid granularity (years, months, weeks)")
	flags.Duration("tick", time.Second, "TUI refresh interval")
	flags.String("env-file", ".env", "Optional .env file with LIFECLOCK_* settings")

	rootCmd.AddCommand(
		versionCmd(),
		profileCmd(&a),
		clockCmd(&a),
		timelineCmd(&a),
		milestonesCmd(&a),
		expectancyCmd(&a),
		incomeCmd(&a),
		exportCmd(&a),
		tuiCmd(&a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
