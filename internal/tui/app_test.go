package tui

import (
	"strings"
	"testing"

	"folio-cli/internal/content"
	"folio-cli/internal/palette"
	"folio-cli/internal/prefs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type openRecorder struct {
	urls   []string
	copied []string
}

func (r *openRecorder) open(u string) error {
	r.urls = append(r.urls, u)
	return nil
}

func (r *openRecorder) copy(s string) error {
	r.copied = append(r.copied, s)
	return nil
}

func newTestModel(t *testing.T, reg *content.Registry) (*appModel, *openRecorder) {
	t.Helper()
	rec := &openRecorder{}
	m := newAppModel(Options{
		Registry: reg,
		Theme:    prefs.NewTheme(prefs.NewMemoryStore(), ApplyPresentation, nil),
		Opener:   rec.open,
		Copier:   rec.copy,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	t.Cleanup(func() { ApplyPresentation(prefs.DefaultDark) })
	return m, rec
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "alt+k":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}, Alt: true}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m *appModel, k string) tea.Cmd {
	_, cmd := m.Update(keyMsg(k))
	return cmd
}

// runCmd executes cmd (expanding batches) and returns the messages produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func deliver(m *appModel, msgs []tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

// anchorOffset is where ScrollTo(a) lands: the anchor line, clamped so the
// viewport stays full.
func anchorOffset(m *appModel, a palette.Anchor) int {
	line := m.anchors[a]
	if max := m.page.TotalLineCount() - m.page.Height; line > max {
		line = max
	}
	if line < 0 {
		line = 0
	}
	return line
}

// openFocusedPalette opens the palette with the chord and lets the deferred
// focus land.
func openFocusedPalette(t *testing.T, m *appModel) {
	t.Helper()
	deliver(m, runCmd(press(m, "ctrl+k")))
	if !m.palette.IsOpen() || !m.input.Focused() {
		t.Fatalf("expected open, focused palette; open=%v focused=%v", m.palette.IsOpen(), m.input.Focused())
	}
}

func TestChord_OpensPaletteWithDeferredFocus(t *testing.T) {
	m, _ := newTestModel(t, nil)

	cmd := press(m, "ctrl+k")
	if !m.palette.IsOpen() {
		t.Fatalf("expected palette open after ctrl+k")
	}
	if _, ok := m.host.Content().(paletteContent); !ok {
		t.Fatalf("expected palette mounted in modal host, got %T", m.host.Content())
	}
	if m.input.Focused() {
		t.Fatalf("input must not be focused before the focus tick")
	}

	// Keystrokes before focus lands are held, then replayed in order.
	press(m, "l")
	press(m, "i")
	if got := m.palette.Query(); got != "" {
		t.Fatalf("expected empty query before focus, got %q", got)
	}

	deliver(m, runCmd(cmd))
	if !m.input.Focused() || !m.palette.Focused() {
		t.Fatalf("expected focus after tick")
	}
	if got := m.palette.Query(); got != "li" {
		t.Fatalf("expected early keystrokes replayed, got %q", got)
	}
}

func TestChord_EarlyKeystrokesDroppedOnClose(t *testing.T) {
	m, _ := newTestModel(t, nil)
	first := press(m, "ctrl+k")
	press(m, "x")
	press(m, "esc")

	second := press(m, "ctrl+k")
	deliver(m, runCmd(first))
	deliver(m, runCmd(second))
	if got := m.palette.Query(); got != "" {
		t.Fatalf("keystrokes from a closed palette must not leak into the next one, got %q", got)
	}
}

func TestChord_AltVariantAlsoOpens(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "alt+k")
	if !m.palette.IsOpen() {
		t.Fatalf("expected alt+k to open the palette")
	}
}

func TestChord_WhileOpenIsNoop(t *testing.T) {
	m, _ := newTestModel(t, nil)
	openFocusedPalette(t, m)
	press(m, "go")
	press(m, "ctrl+k")
	if got := m.palette.Query(); got != "go" {
		t.Fatalf("second chord must not reset the query, got %q", got)
	}
}

func TestPalette_QuerySelectsLinkedIn(t *testing.T) {
	m, rec := newTestModel(t, nil)
	openFocusedPalette(t, m)

	press(m, "link")
	visible := m.palette.Visible(m.actions())
	if len(visible) != 1 || visible[0].Label != "Open LinkedIn" {
		t.Fatalf("expected only Open LinkedIn, got %+v", visible)
	}

	deliver(m, runCmd(press(m, "enter")))
	if m.palette.IsOpen() || m.host.IsOpen() {
		t.Fatalf("expected palette closed after selection")
	}
	want := m.reg.Profile.Links.LinkedIn
	if len(rec.urls) != 1 || rec.urls[0] != want {
		t.Fatalf("expected opener called once with %q, got %v", want, rec.urls)
	}
	if got := m.bus.Len(); got != 1 {
		t.Fatalf("expected only the root subscription after close, got %d", got)
	}
}

func TestPalette_EscapeClosesWithoutTouchingPage(t *testing.T) {
	m, rec := newTestModel(t, nil)
	press(m, "]")
	press(m, "j")
	active, idx := m.filter.Active(), m.projectIdx

	openFocusedPalette(t, m)
	press(m, "proj")
	press(m, "esc")

	if m.palette.IsOpen() || m.host.IsOpen() {
		t.Fatalf("expected palette closed after esc")
	}
	if m.palette.Query() != "" || m.input.Value() != "" {
		t.Fatalf("expected query cleared on close")
	}
	if m.filter.Active() != active || m.projectIdx != idx {
		t.Fatalf("page state changed: tag %q->%q idx %d->%d", active, m.filter.Active(), idx, m.projectIdx)
	}
	if len(rec.urls) != 0 {
		t.Fatalf("no action should have run, got %v", rec.urls)
	}
}

func TestPalette_RepeatedOpenCloseDoesNotLeakSubscriptions(t *testing.T) {
	m, _ := newTestModel(t, nil)
	for i := 0; i < 20; i++ {
		chord := "ctrl+k"
		if i%2 == 1 {
			chord = "alt+k"
		}
		press(m, chord)
		if got := m.bus.Len(); got != 2 {
			t.Fatalf("cycle %d: expected 2 subscriptions while open, got %d", i, got)
		}
		if i%3 == 0 {
			m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		} else {
			press(m, "esc")
		}
		if m.palette.IsOpen() {
			t.Fatalf("cycle %d: expected palette closed", i)
		}
		if got := m.bus.Len(); got != 1 {
			t.Fatalf("cycle %d: expected 1 subscription after close, got %d", i, got)
		}
	}
}

func TestPalette_StaleFocusTickIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, nil)

	first := press(m, "ctrl+k")
	press(m, "esc")
	second := press(m, "ctrl+k")

	deliver(m, runCmd(first))
	if m.input.Focused() {
		t.Fatalf("focus tick from a previous open must be ignored")
	}
	deliver(m, runCmd(second))
	if !m.input.Focused() {
		t.Fatalf("expected current focus tick to apply")
	}

	// And a tick arriving after close does nothing.
	press(m, "esc")
	deliver(m, []tea.Msg{paletteFocusMsg{seq: 1 << 20}})
	if m.input.Focused() || m.palette.IsOpen() {
		t.Fatalf("expected closed, unfocused palette")
	}
}

func TestPalette_GoToActionsScrollPage(t *testing.T) {
	m, _ := newTestModel(t, nil)

	openFocusedPalette(t, m)
	press(m, "projects")
	press(m, "enter")
	if got, want := m.page.YOffset, anchorOffset(m, palette.AnchorProjects); got != want || want == 0 {
		t.Fatalf("expected page at projects anchor %d, got %d", want, got)
	}

	openFocusedPalette(t, m)
	press(m, "top")
	press(m, "enter")
	if m.page.YOffset != 0 {
		t.Fatalf("expected Go to Top to reset offset, got %d", m.page.YOffset)
	}
}

func TestPalette_ThemeToggleRelabels(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if !m.theme.Get() {
		t.Fatalf("expected dark by default")
	}

	openFocusedPalette(t, m)
	press(m, "light")
	visible := m.palette.Visible(m.actions())
	if len(visible) != 1 || visible[0].Label != "Switch to Light Mode" {
		t.Fatalf("expected theme action, got %+v", visible)
	}
	press(m, "enter")
	if m.theme.Get() {
		t.Fatalf("expected light mode after toggle")
	}
	if markdownStyle() != "light" {
		t.Fatalf("expected markdown style to follow theme, got %q", markdownStyle())
	}

	found := false
	for _, a := range m.actions() {
		if a.Label == "Switch to Dark Mode" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected relabeled toggle after switching")
	}

	// The page shortcut flips it back.
	press(m, "t")
	if !m.theme.Get() {
		t.Fatalf("expected dark after t")
	}
}

func TestPalette_NoResults(t *testing.T) {
	m, rec := newTestModel(t, nil)
	openFocusedPalette(t, m)
	press(m, "zzzz")

	if !strings.Contains(m.View(), "No results") {
		t.Fatalf("expected No results in view")
	}
	press(m, "enter")
	if !m.palette.IsOpen() {
		t.Fatalf("enter with no results must keep the palette open")
	}
	if len(rec.urls) != 0 {
		t.Fatalf("unexpected open: %v", rec.urls)
	}
}

func TestPalette_ArrowMovesHighlight(t *testing.T) {
	m, _ := newTestModel(t, nil)
	openFocusedPalette(t, m)
	press(m, "go to")
	press(m, "down")
	press(m, "enter")
	if got, want := m.page.YOffset, anchorOffset(m, palette.AnchorExperience); got != want || want == 0 {
		t.Fatalf("expected second match (experience) at %d, got %d", want, got)
	}
}

// screenRowOf returns the screen row of the palette line containing text.
func screenRowOf(t *testing.T, m *appModel, text string) int {
	t.Helper()
	box := m.renderModal()
	_, top := modalRect(m.width, m.height, lipgloss.Width(box), lipgloss.Height(box))
	for i, ln := range strings.Split(box, "\n") {
		if strings.Contains(xansi.Strip(ln), text) {
			return top + i
		}
	}
	t.Fatalf("%q not found in palette box", text)
	return 0
}

func click(m *appModel, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestPalette_ClickSelectsRow(t *testing.T) {
	m, _ := newTestModel(t, nil)
	openFocusedPalette(t, m)

	// The title line is inside the box but is not a row.
	click(m, m.width/2, screenRowOf(t, m, "Command Palette"))
	if !m.palette.IsOpen() {
		t.Fatalf("clicking the header must keep the palette open")
	}

	click(m, m.width/2, screenRowOf(t, m, "Go to Experience"))
	if m.palette.IsOpen() || m.host.IsOpen() {
		t.Fatalf("expected palette closed after clicking a row")
	}
	if got, want := m.page.YOffset, anchorOffset(m, palette.AnchorExperience); got != want || want == 0 {
		t.Fatalf("expected page at experience anchor %d, got %d", want, got)
	}
}

func TestTagCycle_FiltersCards(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if got := len(m.visibleProjects()); got != len(m.reg.Projects) {
		t.Fatalf("expected all projects initially, got %d", got)
	}
	press(m, "]")
	if m.filter.Active() == content.AllTag {
		t.Fatalf("expected a concrete tag after ]")
	}
	for _, p := range m.visibleProjects() {
		if !p.HasTag(m.filter.Active()) {
			t.Fatalf("project %q lacks active tag %q", p.ID, m.filter.Active())
		}
	}
	press(m, "0")
	if m.filter.Active() != content.AllTag {
		t.Fatalf("expected 0 to select All, got %q", m.filter.Active())
	}
}

func TestCaseStudy_OpenAndDismiss(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "j")
	press(m, "enter")

	c, ok := m.host.Content().(caseStudyContent)
	if !ok {
		t.Fatalf("expected case study mounted, got %T", m.host.Content())
	}
	if m.selected == nil || m.selected.ID != c.project.ID || c.project.ID != m.reg.Projects[1].ID {
		t.Fatalf("expected second project selected, got %+v", m.selected)
	}
	if !strings.Contains(m.View(), c.project.Title) {
		t.Fatalf("expected view to show %q", c.project.Title)
	}

	press(m, "esc")
	if m.host.IsOpen() || m.selected != nil {
		t.Fatalf("expected case study dismissed and selection cleared")
	}
	if m.bus.Len() != 1 {
		t.Fatalf("expected root subscription only, got %d", m.bus.Len())
	}
}

func TestCaseStudy_BackdropClickAndCloseKey(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "enter")
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.host.IsOpen() || m.selected != nil {
		t.Fatalf("expected backdrop click to dismiss the case study")
	}

	press(m, "enter")
	press(m, "x")
	if m.host.IsOpen() {
		t.Fatalf("expected x to dismiss the case study")
	}
}

func TestCaseStudy_PaletteSuspendsAndKeepsSelection(t *testing.T) {
	m, _ := newTestModel(t, nil)
	press(m, "enter")
	want := m.selected.ID

	press(m, "ctrl+k")
	if _, ok := m.host.Content().(paletteContent); !ok {
		t.Fatalf("expected palette mounted over the case study, got %T", m.host.Content())
	}
	if m.selected == nil || m.selected.ID != want {
		t.Fatalf("opening the palette must keep the selection, got %+v", m.selected)
	}
	if m.bus.Len() != 2 {
		t.Fatalf("expected root + palette subscriptions, got %d", m.bus.Len())
	}

	press(m, "esc")
	c, ok := m.host.Content().(caseStudyContent)
	if !ok || c.project.ID != want {
		t.Fatalf("expected case study %q back after esc, got %T", want, m.host.Content())
	}
	if m.selected == nil || m.selected.ID != want {
		t.Fatalf("selection changed after palette open+close: %+v", m.selected)
	}
	if m.bus.Len() != 2 {
		t.Fatalf("expected root + case study subscriptions, got %d", m.bus.Len())
	}

	press(m, "esc")
	if m.host.IsOpen() || m.selected != nil || m.bus.Len() != 1 {
		t.Fatalf("expected case study dismissed; open=%v selected=%v subs=%d", m.host.IsOpen(), m.selected, m.bus.Len())
	}
}

func TestCaseStudy_PaletteActionThenResume(t *testing.T) {
	m, rec := newTestModel(t, nil)
	press(m, "enter")
	want := m.selected.ID

	openFocusedPalette(t, m)
	press(m, "linkedin")
	deliver(m, runCmd(press(m, "enter")))
	if len(rec.urls) != 1 {
		t.Fatalf("expected LinkedIn opened, got %v", rec.urls)
	}
	if c, ok := m.host.Content().(caseStudyContent); !ok || c.project.ID != want {
		t.Fatalf("expected case study resumed after the action, got %T", m.host.Content())
	}
}

func TestCaseStudy_OpenLinkPrefersDemo(t *testing.T) {
	reg := &content.Registry{
		Projects: []content.Project{{
			ID:    "demo",
			Title: "Demo project",
			Tags:  []string{"Go"},
			Demo:  "https://example.com/demo",
			Repo:  "https://example.com/repo",
		}},
	}
	m, rec := newTestModel(t, reg)
	press(m, "enter")
	deliver(m, runCmd(press(m, "o")))
	if len(rec.urls) != 1 || rec.urls[0] != "https://example.com/demo" {
		t.Fatalf("expected demo opened, got %v", rec.urls)
	}
}

func TestQuit_ReleasesRootSubscription(t *testing.T) {
	m, _ := newTestModel(t, nil)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if m.bus.Len() != 0 {
		t.Fatalf("expected no subscriptions after quit, got %d", m.bus.Len())
	}
}

func TestCopy_PaletteHintAndPageEmail(t *testing.T) {
	m, rec := newTestModel(t, nil)

	openFocusedPalette(t, m)
	press(m, "linkedin")
	deliver(m, runCmd(press(m, "ctrl+y")))
	if len(rec.copied) != 1 || rec.copied[0] != m.reg.Profile.Links.LinkedIn {
		t.Fatalf("expected LinkedIn URL copied, got %v", rec.copied)
	}
	if !m.palette.IsOpen() {
		t.Fatalf("copy must not close the palette")
	}
	if m.status != "copied open linkedin" {
		t.Fatalf("unexpected status %q", m.status)
	}

	press(m, "esc")
	deliver(m, runCmd(press(m, "y")))
	if len(rec.copied) != 2 || rec.copied[1] != m.reg.Profile.Links.EmailAddress() {
		t.Fatalf("expected email copied, got %v", rec.copied)
	}
	if !strings.Contains(m.View(), "copied email") {
		t.Fatalf("expected status in footer")
	}
}
