package tui

import (
	"fmt"
	"strings"

	"folio-cli/internal/content"
	"folio-cli/internal/palette"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	headerHeight = 2
	footerHeight = 1

	// Every project card renders to exactly this many lines, border included.
	cardHeight = 6
	cardGap    = 1

	paletteKicker = "⌘K"
)

// pageBuilder accumulates the page's lines so sections can record where they
// start.
type pageBuilder struct {
	lines []string
}

func (b *pageBuilder) add(s string) {
	b.lines = append(b.lines, strings.Split(s, "\n")...)
}

func (b *pageBuilder) blank() { b.lines = append(b.lines, "") }

func (b *pageBuilder) mark() int { return len(b.lines) }

func (b *pageBuilder) String() string { return strings.Join(b.lines, "\n") }

// refreshPage re-renders the scrolling page and recomputes section anchors and
// card offsets. The viewport keeps its offset.
func (m *appModel) refreshPage() {
	w := m.contentWidth()
	var b pageBuilder

	m.anchors[palette.AnchorTop] = b.mark()
	m.renderIntro(&b, w)
	b.blank()

	m.anchors[palette.AnchorSkills] = b.mark()
	m.renderSkills(&b, w)
	b.blank()

	m.anchors[palette.AnchorProjects] = b.mark()
	m.renderProjects(&b, w)
	b.blank()

	m.renderOtherProjects(&b, w)
	b.blank()

	m.anchors[palette.AnchorExperience] = b.mark()
	m.renderExperience(&b, w)
	b.blank()

	b.add(styleMuted().Render(fmt.Sprintf("© %s · press ctrl+k for commands", m.reg.Profile.Name)))

	m.page.SetContent(b.String())
}

func (m *appModel) renderIntro(b *pageBuilder, w int) {
	p := m.reg.Profile
	b.add(styleAccent().Render(strings.ToUpper(p.Role)))
	b.add(styleSectionTitle().Render(p.Name))
	if p.Location != "" {
		b.add(styleMuted().Render(p.Location))
	}
	if len(p.Badges) > 0 {
		badges := make([]string, 0, len(p.Badges))
		for _, s := range p.Badges {
			badges = append(badges, styleBadge().Render(s))
		}
		b.blank()
		b.add(lipgloss.NewStyle().Width(w).Render(strings.Join(badges, " ")))
	}
	b.blank()
	if p.Tagline != "" {
		b.add(lipgloss.NewStyle().Bold(true).Width(w).Render(p.Tagline))
	}
	if p.Summary != "" {
		b.add(styleMuted().Width(w).Render(p.Summary))
	}
	if len(p.Facts) > 0 {
		b.blank()
		for _, f := range p.Facts {
			b.add(styleMuted().Render(fmt.Sprintf("%-12s", f.Key)) + " " + f.Value)
		}
	}
}

func (m *appModel) renderSkills(b *pageBuilder, w int) {
	b.add(styleSectionTitle().Render("Skills"))
	nameW := 0
	for _, s := range m.reg.Skills {
		if n := xansi.StringWidth(s.Name); n > nameW {
			nameW = n
		}
	}
	barW := w - nameW - 7
	if barW < 4 {
		barW = 4
	}
	for _, s := range m.reg.Skills {
		level := s.Level
		if level < 0 {
			level = 0
		}
		if level > 100 {
			level = 100
		}
		fill := barW * level / 100
		bar := lipgloss.NewStyle().Foreground(colorBarFill).Render(strings.Repeat("█", fill)) +
			lipgloss.NewStyle().Foreground(colorBarRest).Render(strings.Repeat("░", barW-fill))
		name := s.Name + strings.Repeat(" ", nameW-xansi.StringWidth(s.Name))
		b.add(fmt.Sprintf("%s %s %3d%%", name, bar, level))
	}
}

func (m *appModel) renderProjects(b *pageBuilder, w int) {
	b.add(styleSectionTitle().Render("Projects"))

	tags := m.filter.Tags()
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, styleTag(t == m.filter.Active()).Render(t))
	}
	b.add(lipgloss.NewStyle().Width(w).Render(strings.Join(parts, " ")))
	b.blank()

	visible := m.visibleProjects()
	m.cardLines = m.cardLines[:0]
	if len(visible) == 0 {
		b.add(styleMuted().Render("No projects tagged " + m.filter.Active() + "."))
		return
	}
	for i, p := range visible {
		if i > 0 {
			for j := 0; j < cardGap; j++ {
				b.blank()
			}
		}
		m.cardLines = append(m.cardLines, b.mark())
		b.add(renderProjectCard(p, w, i == m.projectIdx))
	}
}

func renderProjectCard(p content.Project, w int, selected bool) string {
	innerW := w - 4
	if innerW < 10 {
		innerW = 10
	}
	title := lipgloss.NewStyle().Bold(true).Render(p.Title)
	year := styleMuted().Render(p.Year)
	gap := innerW - xansi.StringWidth(title) - xansi.StringWidth(year)
	if gap < 1 {
		gap = 1
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, styleBadge().Render(t))
	}
	lines := []string{
		title + strings.Repeat(" ", gap) + year,
		styleAccent().Render(p.Highlight),
		styleMuted().Render(p.Description),
		strings.Join(tags, " "),
	}
	body := normalizePane(strings.Join(lines, "\n"), innerW, cardHeight-2)

	border := colorCardBorder
	st := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	if selected {
		border = colorSelectedBorder
		st = st.Background(colorSelectedBg)
	}
	return st.BorderForeground(border).Render(body)
}

func (m *appModel) renderOtherProjects(b *pageBuilder, w int) {
	if len(m.reg.OtherProjects) == 0 {
		return
	}
	b.add(styleSectionTitle().Render("Other projects"))
	for _, o := range m.reg.OtherProjects {
		b.add("• " + lipgloss.NewStyle().Bold(true).Render(o.Title) + styleMuted().Render("  "+o.Tech))
		if o.Note != "" {
			b.add(styleMuted().Width(w).PaddingLeft(2).Render(o.Note))
		}
	}
}

func (m *appModel) renderExperience(b *pageBuilder, w int) {
	b.add(styleSectionTitle().Render("Experience"))
	for i, e := range m.reg.Experience {
		if i > 0 {
			b.blank()
		}
		b.add(styleMuted().Render(e.Time))
		b.add(lipgloss.NewStyle().Bold(true).Render(e.Title) + " · " + styleAccent().Render(e.Org))
		for _, pt := range e.Points {
			b.add(lipgloss.NewStyle().Width(w).PaddingLeft(2).Render("– " + pt))
		}
	}
}

func (m *appModel) refreshStudy() {
	bodyW := modalBodyWidth(m.width)
	h := m.height*2/3 - 6
	if h < 3 {
		h = 3
	}
	m.study.Width = bodyW
	m.study.Height = h
	if m.selected == nil {
		return
	}
	m.study.SetContent(renderMarkdown(content.CaseStudyMarkdown(*m.selected), bodyW))
}

func (m *appModel) View() string {
	if !m.ready {
		return "loading…"
	}
	w := m.contentWidth()

	themeLabel := "☾ dark"
	if !m.theme.Get() {
		themeLabel = "☀ light"
	}
	left := styleAccent().Render("folio") + styleMuted().Render(" · "+m.reg.Profile.Name)
	right := styleMuted().Render(themeLabel)
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	header := left + strings.Repeat(" ", gap) + right

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = lipgloss.NewStyle().Foreground(colorAccent).Render(m.status)
	}

	body := strings.Join([]string{
		normalizePane(header, w, 1),
		"",
		normalizePane(m.page.View(), w, m.page.Height),
		normalizePane(footer, w, footerHeight),
	}, "\n")
	frame := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, body,
		lipgloss.WithWhitespaceBackground(colorSurfaceBg))
	frame = lipgloss.NewStyle().
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Render(frame)

	if !m.host.IsOpen() {
		return frame
	}
	return overlay(frame, m.renderModal(), m.width, m.height)
}

// renderModal draws whatever the host has mounted.
func (m *appModel) renderModal() string {
	switch c := m.host.Content().(type) {
	case paletteContent:
		return renderModalBox(m.width, paletteKicker, c.Title(), m.renderPaletteBody())
	case caseStudyContent:
		return renderModalBox(m.width, "Case study", c.Title(), m.renderStudyBody(c.project))
	}
	return ""
}

func (m *appModel) renderPaletteBody() string {
	bodyW := modalBodyWidth(m.width)
	lines := []string{renderSearchLine(bodyW, m.input.View(), "esc"), ""}

	visible := m.palette.Visible(m.actions())
	if len(visible) == 0 {
		lines = append(lines, styleMuted().Render("No results"))
	} else {
		cur := m.palette.Cursor(len(visible))
		for i, a := range visible {
			lines = append(lines, renderActionRow(a, bodyW, i == cur))
		}
	}
	lines = append(lines, "", styleMuted().Render("↑/↓ navigate · enter select · ctrl+y copy · esc close"))
	return strings.Join(lines, "\n")
}

func renderActionRow(a palette.Action, w int, selected bool) string {
	label := a.Label
	hint := a.Hint
	gap := w - 2 - xansi.StringWidth(label) - xansi.StringWidth(hint)
	if gap < 1 {
		hint = ""
		gap = w - 2 - xansi.StringWidth(label)
		if gap < 0 {
			gap = 0
		}
	}
	if selected {
		row := "› " + label + strings.Repeat(" ", gap) + hint
		return lipgloss.NewStyle().
			Foreground(colorAccentFg).
			Background(colorAccent).
			Render(normalizePane(row, w, 1))
	}
	return "  " + label + strings.Repeat(" ", gap) + styleMuted().Render(hint)
}

func (m *appModel) renderStudyBody(p content.Project) string {
	var links []string
	if p.Demo != "" {
		links = append(links, "demo")
	}
	if p.Repo != "" {
		links = append(links, "repo")
	}
	hint := "↑/↓ scroll · esc close"
	if len(links) > 0 {
		hint = "o open " + strings.Join(links, "/") + " · " + hint
	}
	return m.study.View() + "\n\n" + styleMuted().Render(hint)
}
