// Package tui hosts the live life clock. It owns the tick: every interval
// it reads its Clock, recomputes the summary and grid, and re-renders.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/lifeclock/internal/calculation"
	"github.com/rgehrsitz/lifeclock/internal/domain"
	"github.com/rgehrsitz/lifeclock/internal/milestone"
	"github.com/rgehrsitz/lifeclock/internal/output"
)

// Options is everything the live view needs. Profile and Result are
// resolved by the caller; the view never touches the datasets.
type Options struct {
	Profile     domain.Profile
	Outlook     domain.OutlookPreferences
	Result      domain.LifeExpectancyResult
	Holidays    domain.HolidaySet
	Counter     *milestone.Counter
	Granularity domain.Granularity
	Tick        time.Duration
	Clock       Clock
}

// Model represents the entire application state
type Model struct {
	opts Options

	// Terminal dimensions
	width  int
	height int

	granularity domain.Granularity
	now         time.Time
	summary     output.ClockSummary
	timeline    domain.TimelineData
	milestones  []domain.Milestone
	milestoneOn time.Time
	tagline     int

	grid viewport.Model
	keys keyMap
	help help.Model

	err error
}

// NewModel creates the model and computes the first frame.
func NewModel(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	if opts.Counter == nil {
		opts.Counter = milestone.NewCounter()
	}
	if opts.Granularity == "" {
		opts.Granularity = domain.GranularityYears
	}

	m := Model{
		opts:        opts,
		width:       80,
		height:      24,
		granularity: opts.Granularity,
		grid:        viewport.New(80, 12),
		keys:        defaultKeyMap(),
		help:        help.New(),
	}
	m.refresh(opts.Clock.Now())
	return m
}

// Init starts the tick loop (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Clock, m.opts.Tick)
}

// refresh recomputes everything derived from now. Milestones only change
// when the calendar day does, so they are cached per day.
func (m *Model) refresh(now time.Time) {
	birth := m.opts.Profile.BirthDate
	m.now = now
	m.summary = output.NewClockSummary(birth, now, m.opts.Result)

	tl, err := calculation.BuildTimeline(birth, now, m.opts.Result.Years, m.granularity)
	if err != nil {
		m.err = fmt.Errorf("failed to build %s timeline: %w", m.granularity, err)
		return
	}
	m.err = nil
	m.timeline = tl
	m.grid.SetContent(renderGrid(tl))

	day := startOfDay(now)
	if m.milestones == nil || !day.Equal(m.milestoneOn) {
		m.milestones = m.opts.Counter.Calculate(m.opts.Outlook, birth, now, m.summary.ExpectedEnd, m.opts.Holidays)
		m.milestoneOn = day
	}
}

func startOfDay(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

// setGranularity switches the grid and scrolls back to the top.
func (m *Model) setGranularity(g domain.Granularity) {
	if g == m.granularity {
		return
	}
	m.granularity = g
	m.refresh(m.now)
	m.grid.GotoTop()
}

func nextGranularity(g domain.Granularity) domain.Granularity {
	for i, known := range domain.Granularities {
		if known == g {
			return domain.Granularities[(i+1)%len(domain.Granularities)]
		}
	}
	return domain.GranularityYears
}

// Granularity reports the grid currently shown.
func (m Model) Granularity() domain.Granularity { return m.granularity }

// Now reports the instant of the last frame.
func (m Model) Now() time.Time { return m.now }

// Summary reports the clock figures of the last frame.
func (m Model) Summary() output.ClockSummary { return m.summary }

// Timeline reports the grid of the last frame.
func (m Model) Timeline() domain.TimelineData { return m.timeline }

// Milestones reports the cached milestone counts.
func (m Model) Milestones() []domain.Milestone { return m.milestones }

// Err reports the last error, if any.
func (m Model) Err() error { return m.err }
