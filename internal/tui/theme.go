package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors are adaptive: the Light/Dark variant is picked from Lip Gloss's
// background flag, which ApplyPresentation drives from the persisted theme
// preference rather than from terminal detection.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorSurfaceBg = ac("#fafafa", "#141418")
	colorSurfaceFg = ac("#18181b", "#f4f4f5")
	colorMuted     = ac("#52525b", "#a1a1aa")

	// Rose accent, as used for badges, the active tag and headings.
	colorAccent   = ac("#e11d48", "#fb7185")
	colorAccentFg = ac("#ffffff", "#141418")

	colorBadgeBg = ac("#fff1f2", "#3b1d27")
	colorBadgeFg = ac("#be123c", "#fecdd3")

	colorCardBorder     = ac("#e4e4e7", "#3f3f46")
	colorSelectedBorder = ac("#e11d48", "#fb7185")
	colorSelectedBg     = ac("#ffe4e6", "#27272a")

	colorControlBg = ac("#f4f4f5", "#1f1f24")
	colorInputBg   = ac("#ffffff", "#18181b")

	colorModalBg = ac("#ffffff", "#09090b")
	colorBarFill = ac("#f43f5e", "#f43f5e")
	colorBarRest = ac("#e4e4e7", "#27272a")
)

// ApplyPresentation is the presentation-mode hook for the theme preference:
// it switches adaptive colors and the markdown style between light and dark.
func ApplyPresentation(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
	setMarkdownStyle(dark)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

func styleBadge() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorBadgeFg).
		Background(colorBadgeBg).
		Padding(0, 1)
}

func styleTag(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().
			Foreground(colorAccentFg).
			Background(colorAccent).
			Bold(true).
			Padding(0, 1)
	}
	return lipgloss.NewStyle().
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Padding(0, 1)
}

func styleSectionTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSurfaceFg).Bold(true)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR/CLICOLOR_FORCE, which can disable colors
// inside a TUI; here only NO_COLOR is honored, otherwise the terminal's
// capabilities (nudged up by TERM/COLORTERM) win.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}
