package tui

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Opener hands a URL (https:, mailto:, ...) to the host environment.
type Opener func(url string) error

type urlOpenDoneMsg struct {
	url string
	err error
}

// SystemOpener opens url with the platform's default handler.
func SystemOpener(u string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", u)
	default:
		cmd = exec.Command("xdg-open", u)
	}
	// Keep the opener's chatter out of the alt screen.
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Wait()
}

func (m *appModel) openURL(u string) tea.Cmd {
	u = strings.TrimSpace(u)
	open := m.opener
	return func() tea.Msg {
		if u == "" {
			return urlOpenDoneMsg{err: errors.New("empty url")}
		}
		return urlOpenDoneMsg{url: u, err: open(u)}
	}
}
