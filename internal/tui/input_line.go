package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderSearchLine renders the palette's query row: a search glyph, the input
// and a right-aligned key badge, filling exactly bodyW columns.
func renderSearchLine(bodyW int, inputView string, badge string) string {
	if bodyW < 16 {
		bodyW = 16
	}

	// A newline in the input view would wrap the row and look like typed line breaks.
	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)

	glyph := styleMuted().Background(colorInputBg).Render(" ⌕ ")
	tag := ""
	if badge != "" {
		tag = styleBadge().Render(badge)
	}
	inputW := bodyW - xansi.StringWidth(glyph) - xansi.StringWidth(tag) - 1
	if inputW < 1 {
		inputW = 1
	}
	if xansi.StringWidth(inputView) > inputW {
		inputView = xansi.Cut(inputView, 0, inputW) + "\x1b[0m"
	}
	field := lipgloss.PlaceHorizontal(
		inputW+1,
		lipgloss.Left,
		inputView,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	return glyph + field + tag
}
