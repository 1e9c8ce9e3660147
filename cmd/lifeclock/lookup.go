package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/expectancy"
)

func expectancyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expectancy",
		Short: "Look up life expectancy by country, gender and income percentile",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list"); list {
				for _, c := range a.resolver.CountryList() {
					fmt.Fprintf(out, "%s  %s\n", c.Code, c.Name)
				}
				stats := a.resolver.Statistics()
				fmt.Fprintf(out, "\n%d countries, highest %.1f, lowest %.1f, average %.1f years\n",
					stats.TotalCountries, stats.Highest, stats.Lowest, stats.Average)
				return nil
			}

			country, _ := cmd.Flags().GetString("country")
			genderFlag, _ := cmd.Flags().GetString("gender")
			gender, err := domain.ParseGender(genderFlag)
			if err != nil {
				return err
			}
			profile := domain.Profile{Gender: gender, Country: normalizeCountry(country)}
			if cmd.Flags().Changed("percentile") {
				p, _ := cmd.Flags().GetInt("percentile")
				profile.IncomePercentile = &p
			}

			result := a.resolver.Resolve(profile)
			name, ok := a.resolver.CountryName(profile.Country)
			if !ok {
				name = "unknown country, global default"
			}
			fmt.Fprintf(out, "%.2f years\n", result.Years)
			fmt.Fprintf(out, "Country: %s (%s)\n", profile.Country, name)
			fmt.Fprintf(out, "Source:  %s: %s\n", result.Source.DatasetName, result.Source.Description)
			return nil
		},
	}
	cmd.Flags().String("country", "USA", "ISO 3166-1 alpha-3 country code")
	cmd.Flags().String("gender", "other", "Gender (male, female, other)")
	cmd.Flags().Int("percentile", 0, "Household income percentile 1-100 (USA only)")
	cmd.Flags().Bool("list", false, "List known countries and summary statistics")
	return cmd
}

func incomeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Convert between household income and income percentile",
		RunE: func(cmd *cobra.Command, args []string) error {
			genderFlag, _ := cmd.Flags().GetString("gender")
			gender, err := domain.ParseGender(genderFlag)
			if err != nil {
				return err
			}

			var pct int
			switch {
			case cmd.Flags().Changed("amount"):
				amount, _ := cmd.Flags().GetFloat64("amount")
				p, ok := a.mapper.PercentileForIncome(amount, gender)
				if !ok {
					return fmt.Errorf("cannot map income %s to a percentile", expectancy.FormatIncome(amount))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is the %s percentile\n", expectancy.FormatIncome(amount), expectancy.Ordinal(p))
				pct = p
			case cmd.Flags().Changed("percentile"):
				pct, _ = cmd.Flags().GetInt("percentile")
				income, ok := a.mapper.IncomeForPercentile(float64(pct), gender)
				if !ok {
					return fmt.Errorf("percentile %d is out of range (1-100)", pct)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "The %s percentile earns about %s\n", expectancy.Ordinal(pct), expectancy.FormatIncome(income))
			default:
				return fmt.Errorf("one of --amount or --percentile is required")
			}

			if low, high, ok := a.mapper.IncomeRange(pct, gender); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Range: %s - %s\n", expectancy.FormatIncome(low), expectancy.FormatIncome(high))
			}
			return nil
		},
	}
	cmd.Flags().Float64("amount", 0, "Annual household income in USD")
	cmd.Flags().Int("percentile", 0, "Income percentile 1-100")
	cmd.Flags().String("gender", "other", "Gender (male, female, other)")
	cmd.MarkFlagsMutuallyExclusive("amount", "percentile")
	return cmd
}
