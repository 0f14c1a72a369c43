package tui

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Copier places text on the system clipboard.
type Copier func(s string) error

type clipboardDoneMsg struct {
	what string
	err  error
}

// SystemCopier uses pbcopy, clip.exe or xclip/xsel/wl-copy, whichever the
// platform has.
func SystemCopier(s string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}

func (m *appModel) copyText(what, s string) tea.Cmd {
	s = strings.TrimSpace(s)
	copyFn := m.copier
	return func() tea.Msg {
		if s == "" {
			return clipboardDoneMsg{what: what, err: errors.New("nothing to copy")}
		}
		return clipboardDoneMsg{what: what, err: copyFn(s)}
	}
}
