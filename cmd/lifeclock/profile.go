package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/lifeclock/internal/config"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/expectancy"
)

func profileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Create, check and print the saved profile",
	}
	cmd.AddCommand(profileInitCmd(a), profileValidateCmd(a), profileShowCmd(a))
	return cmd
}

func profileInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a new profile file",
		RunE: func(cmd *cobra.Command, args []string) error {
			birthFlag, _ := cmd.Flags().GetString("birth")
			genderFlag, _ := cmd.Flags().GetString("gender")
			country, _ := cmd.Flags().GetString("country")
			milestones, _ := cmd.Flags().GetStringSlice("milestones")
			holidays, _ := cmd.Flags().GetStringSlice("holidays")
			force, _ := cmd.Flags().GetBool("force")

			path := a.settings.ProfilePath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("profile %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}

			birth, err := time.ParseInLocation(time.DateOnly, birthFlag, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --birth %q (expected YYYY-MM-DD): %w", birthFlag, err)
			}
			gender, err := domain.ParseGender(genderFlag)
			if err != nil {
				return err
			}

			profile := domain.Profile{BirthDate: birth, Gender: gender, Country: normalizeCountry(country)}
			pct, err := a.percentileFromFlags(cmd, gender)
			if err != nil {
				return err
			}
			profile.IncomePercentile = pct

			file := config.NewProfileFile(profile)
			if cmd.Flags().Changed("milestones") {
				file.Outlook.SelectedMilestones = file.Outlook.SelectedMilestones[:0]
				for _, name := range milestones {
					t, err := domain.ParseMilestoneType(name)
					if err != nil {
						return err
					}
					file.Outlook.SelectedMilestones = append(file.Outlook.SelectedMilestones, t)
				}
			}
			file.Outlook.SelectedHolidays = append(file.Outlook.SelectedHolidays, holidays...)

			if err := a.parser.SaveToFile(path, file, a.now); err != nil {
				return err
			}
			a.logger.Info().Str("path", path).Msg("profile written")
			fmt.Fprintf(cmd.OutOrStdout(), "Profile written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("birth", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().String("gender", "other", "Gender (male, female, other)")
	cmd.Flags().String("country", "USA", "ISO 3166-1 alpha-3 country code")
	cmd.Flags().Float64("income", 0, "Annual household income in USD (converted to a percentile, USA only)")
	cmd.Flags().Int("percentile", 0, "Household income percentile 1-100 (USA only)")
	cmd.Flags().StringSlice("milestones", nil, "Milestone types to count (birthdays, summers, winters, spring, fall, weekends, holidays)")
	cmd.Flags().StringSlice("holidays", nil, "Holiday IDs to count (e.g. christmas, thanksgiving)")
	cmd.Flags().Bool("force", false, "Overwrite an existing profile")
	_ = cmd.MarkFlagRequired("birth")
	cmd.MarkFlagsMutuallyExclusive("income", "percentile")
	return cmd
}

// percentileFromFlags reads --percentile, or converts --income through the
// income mapper. Neither flag means no percentile.
func (a *app) percentileFromFlags(cmd *cobra.Command, gender domain.Gender) (*int, error) {
	switch {
	case cmd.Flags().Changed("percentile"):
		p, _ := cmd.Flags().GetInt("percentile")
		return &p, nil
	case cmd.Flags().Changed("income"):
		income, _ := cmd.Flags().GetFloat64("income")
		p, ok := a.mapper.PercentileForIncome(income, gender)
		if !ok {
			return nil, fmt.Errorf("cannot map income %s to a percentile", expectancy.FormatIncome(income))
		}
		a.logger.Debug().Float64("income", income).Int("percentile", p).Msg("income mapped")
		return &p, nil
	default:
		return nil, nil
	}
}

func profileValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the profile file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadProfile(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid\n", a.settings.ProfilePath)
			return nil
		},
	}
}

func profileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the profile and its resolved life expectancy",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.loadProfile()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(file)
			if err != nil {
				return fmt.Errorf("failed to encode profile: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", a.settings.ProfilePath)
			fmt.Fprint(out, string(data))

			result := a.resolver.Resolve(file.Profile)
			name, ok := a.resolver.CountryName(file.Profile.Country)
			if !ok {
				name = file.Profile.Country
			}
			fmt.Fprintf(out, "# %s, life expectancy %.1f years (%s: %s)\n",
				name, result.Years, result.Source.DatasetName, result.Source.Description)
			return nil
		},
	}
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
