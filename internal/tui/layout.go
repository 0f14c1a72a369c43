package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	maxContentW = 96
	maxModalW   = 84
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall, truncating with an ellipsis.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			switch {
			case width <= 0:
				ln = ""
			case width == 1:
				ln = xansi.Cut(ln, 0, 1)
			default:
				ln = xansi.Cut(ln, 0, width-1) + "…"
			}
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// modalRect is where overlay places a box of boxW x boxH on a width x height
// screen: horizontally centered, a third of the free space above it.
func modalRect(width, height, boxW, boxH int) (left, top int) {
	left = (width - boxW) / 2
	if left < 0 {
		left = 0
	}
	top = (height - boxH) / 3
	if top < 0 {
		top = 0
	}
	return left, top
}

// overlay draws box on top of base. base is assumed to be normalized to
// width x height.
func overlay(base, box string, width, height int) string {
	baseLines := strings.Split(normalizePane(base, width, height), "\n")
	boxW := lipgloss.Width(box)
	boxLines := strings.Split(box, "\n")
	left, top := modalRect(width, height, boxW, len(boxLines))

	for i, bl := range boxLines {
		row := top + i
		if row >= len(baseLines) {
			break
		}
		ln := baseLines[row]
		prefix := xansi.Cut(ln, 0, left)
		suffix := ""
		if left+boxW < width {
			suffix = xansi.Cut(ln, left+boxW, width)
		}
		// Reset styling at the seams so the box can't inherit (or leak) colors.
		baseLines[row] = prefix + "\x1b[0m" + bl + "\x1b[0m" + suffix
	}
	return strings.Join(baseLines, "\n")
}

func modalBoxWidth(width int) int {
	w := width - 4
	if w > maxModalW {
		w = maxModalW
	}
	if w < 20 {
		w = 20
	}
	return w
}

// modalBodyWidth is the usable width inside the modal's border and padding.
func modalBodyWidth(width int) int {
	return modalBoxWidth(width) - 4
}

func renderModalHeader(bodyW int, kicker, title string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styleAccent().Render(kicker),
		lipgloss.NewStyle().Foreground(colorSurfaceFg).Bold(true).Width(bodyW).Render(title),
	)
}

func renderModalBox(width int, kicker, title, body string) string {
	boxW := modalBoxWidth(width)
	bodyW := boxW - 4

	header := renderModalHeader(bodyW, kicker, title)
	content := lipgloss.JoinVertical(lipgloss.Left, header, "", body)

	return lipgloss.NewStyle().
		Width(boxW-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Background(colorModalBg).
		Foreground(colorSurfaceFg).
		Render(content)
}
