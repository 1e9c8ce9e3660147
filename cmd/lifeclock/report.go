package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/lifeclock/internal/calculation"
	"github.com/rgehrsitz/lifeclock/internal/config"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/milestone"
	"github.com/rgehrsitz/lifeclock/internal/output"
)

// session is a loaded profile resolved against the reference instant.
type session struct {
	file   *config.ProfileFile
	result domain.LifeExpectancyResult
	end    time.Time
}

func (a *app) session() (*session, error) {
	file, err := a.loadProfile()
	if err != nil {
		return nil, err
	}
	result := a.resolver.Resolve(file.Profile)
	return &session{
		file:   file,
		result: result,
		end:    calculation.ExpectedEndDate(file.Profile.BirthDate, result.Years),
	}, nil
}

// holidays returns the catalogue, or an empty one if it failed to load.
func (a *app) holidays() domain.HolidaySet {
	set, err := a.store.Holidays()
	if err != nil {
		a.logger.Warn().Err(err).Msg("holiday catalogue unavailable")
		return domain.HolidaySet{}
	}
	return set
}

func (a *app) milestones(s *session) []domain.Milestone {
	return a.counter.Calculate(s.file.Outlook, s.file.Profile.BirthDate, a.now, s.end, a.holidays())
}

func (a *app) tagline(s *session) string {
	if !s.file.Outlook.ShowMotivational {
		return ""
	}
	return milestone.Tagline(a.now.YearDay())
}

// selectedHolidays resolves the outlook's holiday IDs, skipping unknown ones.
func (a *app) selectedHolidays(s *session) []domain.HolidayDefinition {
	set := a.holidays()
	var defs []domain.HolidayDefinition
	for _, id := range s.file.Outlook.SelectedHolidays {
		if def, ok := set.Find(id); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// buildTimelines builds each granularity concurrently, preserving order.
func buildTimelines(ctx context.Context, birth, now time.Time, years float64, gs []domain.Granularity) ([]domain.TimelineData, error) {
	out := make([]domain.TimelineData, len(gs))
	g, ctx := errgroup.WithContext(ctx)
	for i, gran := range gs {
		i, gran := i, gran
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tl, err := calculation.BuildTimeline(birth, now, years, gran)
			if err != nil {
				return err
			}
			out[i] = tl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// writeReport renders r with the named formatter to the command's stdout.
func writeReport(cmd *cobra.Command, format string, r *output.Report) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown format %q (expected %s)", format, strings.Join(output.FormatterNames(), ", "))
	}
	data, err := f.Format(r)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func addFormatFlag(cmd *cobra.Command, def string) {
	cmd.Flags().StringP("format", "f", def, "Output format ("+strings.Join(output.FormatterNames(), ", ")+")")
}

func clockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Show time lived and time remaining",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			summary := output.NewClockSummary(s.file.Profile.BirthDate, a.now, s.result)
			format, _ := cmd.Flags().GetString("format")
			return writeReport(cmd, format, &output.Report{Clock: &summary, Generated: a.now})
		},
	}
	addFormatFlag(cmd, "console")
	return cmd
}

func timelineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw the life grid at the configured granularity",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			tl, err := calculation.BuildTimeline(s.file.Profile.BirthDate, a.now, s.result.Years, a.settings.Granularity)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return writeReport(cmd, format, &output.Report{Timelines: []domain.TimelineData{tl}, Generated: a.now})
		},
	}
	addFormatFlag(cmd, "console")
	return cmd
}

func milestonesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Count the birthdays, seasons, weekends and holidays still ahead",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			return writeReport(cmd, format, &output.Report{
				Milestones: a.milestones(s),
				Tagline:    a.tagline(s),
				Generated:  a.now,
			})
		},
	}
	addFormatFlag(cmd, "console")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export upcoming milestones as a calendar, or everything as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			all, _ := cmd.Flags().GetBool("all")
			dir, _ := cmd.Flags().GetString("output")
			if format != "ics" && format != "json" {
				return fmt.Errorf("export supports ics and json, not %q", format)
			}
			if all && format != "json" {
				return fmt.Errorf("--all requires --format json")
			}

			s, err := a.session()
			if err != nil {
				return err
			}
			birth := s.file.Profile.BirthDate
			summary := output.NewClockSummary(birth, a.now, s.result)
			r := &output.Report{
				Clock:     &summary,
				Events:    output.BuildEvents(a.counter, birth, a.now, s.end, a.selectedHolidays(s)),
				Generated: a.now,
			}
			if all {
				r.Timelines, err = buildTimelines(cmd.Context(), birth, a.now, s.result.Years, domain.Granularities)
				if err != nil {
					return err
				}
				r.Milestones = a.milestones(s)
				r.Tagline = a.tagline(s)
			}

			if dir == "" {
				return writeReport(cmd, format, r)
			}
			path, err := output.WriteFormatted(output.GetFormatterByName(format), r, dir, format)
			if err != nil {
				return err
			}
			a.logger.Info().Str("path", path).Int("events", len(r.Events)).Msg("export written")
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	addFormatFlag(cmd, "ics")
	cmd.Flags().Bool("all", false, "Include every timeline granularity and the milestones (json only)")
	cmd.Flags().StringP("output", "o", "", "Write to a timestamped file in this directory instead of stdout")
	return cmd
}
