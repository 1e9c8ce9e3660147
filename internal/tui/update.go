package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/lifeclock/internal/domain"
)

// chromeHeight is the number of lines the header, cards and footer use
// around the grid viewport. Narrow terminals stack the cards.
func chromeHeight(width int) int {
	if width < 96 {
		return 28
	}
	return 16
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.grid.Width = msg.Width
		m.grid.Height = max(3, msg.Height-chromeHeight(msg.Width))
		return m, nil

	case TickMsg:
		m.refresh(msg.Time)
		return m, tickCmd(m.opts.Clock, m.opts.Tick)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input. Keys the view does not bind
// scroll the grid.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Years):
		m.setGranularity(domain.GranularityYears)
		return m, nil
	case key.Matches(msg, m.keys.Months):
		m.setGranularity(domain.GranularityMonths)
		return m, nil
	case key.Matches(msg, m.keys.Weeks):
		m.setGranularity(domain.GranularityWeeks)
		return m, nil
	case key.Matches(msg, m.keys.Cycle):
		m.setGranularity(nextGranularity(m.granularity))
		return m, nil
	case key.Matches(msg, m.keys.Tagline):
		m.tagline++
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}
