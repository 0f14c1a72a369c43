package tui

import "github.com/charmbracelet/bubbles/key"

// paletteChord opens the command palette from anywhere. Either modifier works.
var paletteChord = []string{"ctrl+k", "alt+k"}

func isPaletteChord(k string) bool {
	for _, c := range paletteChord {
		if c == k {
			return true
		}
	}
	return false
}

type pageKeyMap struct {
	Palette    key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	NextTag    key.Binding
	PrevTag    key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Theme      key.Binding
	Quit       key.Binding
	CloseModal key.Binding
	OpenLink   key.Binding
	Copy       key.Binding
}

func newPageKeyMap() pageKeyMap {
	return pageKeyMap{
		Palette: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp("ctrl+k", "commands"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "ctrl+p"),
			key.WithHelp("↑/k", "prev project"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "ctrl+n"),
			key.WithHelp("↓/j", "next project"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "case study"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("right", "l", "]", "tab"),
			key.WithHelp("→/l", "next tag"),
		),
		PrevTag: key.NewBinding(
			key.WithKeys("left", "h", "[", "shift+tab"),
			key.WithHelp("←/h", "prev tag"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b", "ctrl+u"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "ctrl+d"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home", "<"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end", ">"),
			key.WithHelp("G", "bottom"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		CloseModal: key.NewBinding(
			key.WithKeys("q", "x"),
			key.WithHelp("esc/x", "close"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open demo/repo"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy email"),
		),
	}
}

func (k pageKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Palette, k.Down, k.NextTag, k.Open, k.Theme, k.Quit}
}

func (k pageKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Palette, k.Up, k.Down, k.Open},
		{k.NextTag, k.PrevTag, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Theme, k.Copy, k.Quit},
	}
}
