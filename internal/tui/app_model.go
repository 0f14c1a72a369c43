package tui

import (
	"io"
	"log/slog"
	"time"

	"folio-cli/internal/content"
	"folio-cli/internal/modal"
	"folio-cli/internal/palette"
	"folio-cli/internal/prefs"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// paletteFocusDelay gives the palette overlay one tick to mount before the
// query input takes focus.
const paletteFocusDelay = 50 * time.Millisecond

type paletteFocusMsg struct{ seq int }

type paletteContent struct{}

func (paletteContent) Title() string { return "Command Palette" }

type caseStudyContent struct {
	project content.Project
}

func (c caseStudyContent) Title() string { return c.project.Title }

// appModel is the root composition. It is used through a pointer: modal
// onClose callbacks and palette action effects close over it.
type appModel struct {
	reg    *content.Registry
	theme  *prefs.Theme
	log    *slog.Logger
	opener Opener
	copier Copier

	width  int
	height int
	ready  bool

	keys pageKeyMap
	help help.Model

	page    viewport.Model
	anchors map[palette.Anchor]int
	// cardLines[i] is the first page line of visible project i.
	cardLines []int

	filter     content.Filter
	projectIdx int
	// selected is the project shown in the case-study modal (SelectionState).
	selected *content.Project
	study    viewport.Model

	bus         *modal.Bus
	host        *modal.Host
	releaseRoot func()

	palette palette.Palette
	input   textinput.Model
	// typed holds keystrokes that arrive before the deferred focus lands.
	typed []tea.KeyMsg

	// pending collects commands queued by key handlers and action effects
	// during one Update.
	pending []tea.Cmd

	// status is a one-line notice shown in place of the help bar.
	status string
}

// Options configure the TUI.
type Options struct {
	Registry *content.Registry
	Theme    *prefs.Theme
	Logger   *slog.Logger
	// Opener defaults to SystemOpener.
	Opener Opener
	// Copier defaults to SystemCopier.
	Copier Copier
}

func newAppModel(opts Options) *appModel {
	reg := opts.Registry
	if reg == nil {
		reg = content.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	th := opts.Theme
	if th == nil {
		th = prefs.NewTheme(prefs.NewMemoryStore(), ApplyPresentation, logger)
	}
	opener := opts.Opener
	if opener == nil {
		opener = SystemOpener
	}
	copier := opts.Copier
	if copier == nil {
		copier = SystemCopier
	}

	m := &appModel{
		reg:     reg,
		theme:   th,
		log:     logger,
		opener:  opener,
		copier:  copier,
		keys:    newPageKeyMap(),
		help:    help.New(),
		page:    viewport.New(0, 0),
		study:   viewport.New(0, 0),
		anchors: map[palette.Anchor]int{},
		filter:  content.NewFilter(reg.Projects),
		bus:     &modal.Bus{},
	}
	m.host = modal.NewHost(m.bus)
	// The page itself scrolls with our own bindings.
	m.page.KeyMap = viewport.KeyMap{}
	m.study.KeyMap = viewport.DefaultKeyMap()

	m.input = textinput.New()
	m.input.Placeholder = "Type a command… (e.g. Projects, Email, LinkedIn)"
	m.input.CharLimit = 120
	m.input.Prompt = ""

	// Root-level subscription: the palette chord. Held for the model's lifetime
	// and released by close.
	m.releaseRoot = m.bus.Subscribe(func(k string) bool {
		if !isPaletteChord(k) {
			return false
		}
		m.queue(m.openPalette())
		return true
	})
	return m
}

// close releases the root key subscription.
func (m *appModel) close() {
	if m.releaseRoot != nil {
		m.releaseRoot()
		m.releaseRoot = nil
	}
	m.host.Close()
}

func (m *appModel) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *appModel) drain() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// actions derives the palette registry from current state.
func (m *appModel) actions() []palette.Action {
	return palette.Actions(m, m.reg.Profile, m.theme.Get())
}

// ScrollTo implements palette.Env.
func (m *appModel) ScrollTo(anchor palette.Anchor) {
	line, ok := m.anchors[anchor]
	if !ok {
		m.log.Debug("scroll to unknown anchor", "anchor", anchor)
		return
	}
	m.page.SetYOffset(line)
}

// OpenLink implements palette.Env. A terminal has no notion of a new browsing
// context, so newContext only shows up in the log.
func (m *appModel) OpenLink(url string, newContext bool) {
	m.log.Info("open link", "url", url, "new_context", newContext)
	m.queue(m.openURL(url))
}

// SetDark implements palette.Env.
func (m *appModel) SetDark(dark bool) {
	m.theme.Set(dark)
	m.refreshPage()
	m.refreshStudy()
}

func (m *appModel) visibleProjects() []content.Project {
	return m.filter.Visible()
}

func (m *appModel) setActiveTag(tag string) {
	m.filter.SetActiveTag(tag)
	m.projectIdx = 0
	m.refreshPage()
	m.ScrollTo(palette.AnchorProjects)
}

func (m *appModel) cycleTag(delta int) {
	m.filter.Cycle(delta)
	m.projectIdx = 0
	m.refreshPage()
	m.ScrollTo(palette.AnchorProjects)
}

func (m *appModel) moveProject(delta int) {
	n := len(m.visibleProjects())
	if n == 0 {
		m.projectIdx = 0
		return
	}
	i := m.projectIdx + delta
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.projectIdx = i
	m.refreshPage()
	m.revealProject()
}

// revealProject scrolls the page so the selected card is on screen.
func (m *appModel) revealProject() {
	if m.projectIdx >= len(m.cardLines) {
		return
	}
	top := m.cardLines[m.projectIdx]
	bottom := top + cardHeight
	if top < m.page.YOffset {
		m.page.SetYOffset(top)
	} else if bottom > m.page.YOffset+m.page.Height {
		m.page.SetYOffset(bottom - m.page.Height)
	}
}

func (m *appModel) openPalette() tea.Cmd {
	if m.palette.IsOpen() {
		return nil
	}
	// An open case study is suspended, not dismissed: the selection survives
	// and resumeCaseStudy remounts it once the palette is gone.
	if _, ok := m.host.Content().(caseStudyContent); ok {
		m.host.Close()
	}
	m.host.Open(paletteContent{}, m.closePalette)
	seq := m.palette.Open()
	m.input.Reset()
	m.input.Blur()
	m.typed = nil
	m.log.Debug("palette opened", "seq", seq)
	return tea.Tick(paletteFocusDelay, func(time.Time) tea.Msg {
		return paletteFocusMsg{seq: seq}
	})
}

// closePalette is the palette's onClose: it drops the query so a reopen starts
// fresh.
func (m *appModel) closePalette() {
	m.palette.Close()
	m.input.Reset()
	m.input.Blur()
	m.typed = nil
	m.log.Debug("palette closed")
	m.resumeCaseStudy()
}

func (m *appModel) selectPaletteAction() {
	n := len(m.palette.Visible(m.actions()))
	m.selectPaletteActionAt(m.palette.Cursor(n))
}

// selectPaletteActionAt runs the i-th visible action and closes the palette.
func (m *appModel) selectPaletteActionAt(i int) {
	actions := m.actions()
	visible := m.palette.Visible(actions)
	if i < 0 || i >= len(visible) {
		return
	}
	label := visible[i].Label
	if !m.palette.Select(actions, i) {
		return
	}
	m.log.Info("palette action", "label", label)
	if _, ok := m.host.Content().(paletteContent); ok {
		m.host.Close()
	}
	m.input.Reset()
	m.input.Blur()
	m.typed = nil
	m.resumeCaseStudy()
}

func (m *appModel) openCaseStudy(p content.Project) {
	m.host.Open(caseStudyContent{project: p}, m.closeCaseStudy)
	sel := p
	m.selected = &sel
	m.refreshStudy()
	m.study.GotoTop()
}

// resumeCaseStudy remounts a case study the palette suspended. The study
// viewport keeps its scroll position.
func (m *appModel) resumeCaseStudy() {
	if m.selected == nil || m.host.IsOpen() {
		return
	}
	m.host.Open(caseStudyContent{project: *m.selected}, m.closeCaseStudy)
}

func (m *appModel) closeCaseStudy() {
	m.selected = nil
	m.study.SetContent("")
}
