package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Years   key.Binding
	Months  key.Binding
	Weeks   key.Binding
	Cycle   key.Binding
	Tagline key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Years: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "years"),
		),
		Months: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "months"),
		),
		Weeks: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "weeks"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next grid"),
		),
		Tagline: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next tagline"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Years, k.Months, k.Weeks, k.Cycle},
		{k.Tagline, k.Help, k.Quit},
	}
}
