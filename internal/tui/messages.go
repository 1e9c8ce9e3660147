package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the instant the clock was read for the next frame.
type TickMsg struct {
	Time time.Time
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// tickCmd schedules the next clock read after d.
func tickCmd(clock Clock, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{Time: clock.Now()}
	})
}
