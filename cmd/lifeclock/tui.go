package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/lifeclock/internal/tui"
)

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the live life clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}

			var clock tui.Clock = tui.RealClock{}
			if a.pinned {
				clock = tui.NewOffsetClock(a.now)
			}

			model := tui.NewModel(tui.Options{
				Profile:     s.file.Profile,
				Outlook:     s.file.Outlook,
				Result:      s.result,
				Holidays:    a.holidays(),
				Counter:     a.counter,
				Granularity: a.settings.Granularity,
				Tick:        a.settings.Tick,
				Clock:       clock,
			})

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
