package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen portfolio viewer and blocks until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	m := newAppModel(opts)
	defer m.close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
