package tui

import (
	"strings"

	"folio-cli/internal/palette"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *appModel) Init() tea.Cmd { return nil }

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case paletteFocusMsg:
		// Stale ticks (palette closed or reopened meanwhile) are dropped here.
		if !m.palette.Focus(msg.seq) {
			return m, nil
		}
		m.queue(m.input.Focus())
		typed := m.typed
		m.typed = nil
		for _, k := range typed {
			m.typeIntoPalette(k)
		}
		return m, m.drain()

	case urlOpenDoneMsg:
		if msg.err != nil {
			m.status = "could not open " + msg.url
			m.log.Warn("open link failed", "url", msg.url, "err", msg.err)
		} else {
			m.status = ""
		}
		return m, nil

	case clipboardDoneMsg:
		if msg.err != nil {
			m.status = "could not copy " + msg.what
			m.log.Warn("copy failed", "what", msg.what, "err", msg.err)
		} else {
			m.status = "copied " + msg.what
		}
		return m, nil

	case tea.MouseMsg:
		m.updateMouse(msg)
		return m, m.drain()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			m.close()
			return m, tea.Quit
		}
		k := msg.String()
		// Scoped subscriptions first: the open modal's cancel keys, then the
		// root palette chord.
		if m.bus.Dispatch(k) {
			return m, m.drain()
		}
		if m.host.IsOpen() {
			switch m.host.Content().(type) {
			case paletteContent:
				m.updatePalette(msg)
			case caseStudyContent:
				m.updateCaseStudy(msg)
			}
			return m, m.drain()
		}
		if quit := m.updatePage(msg); quit {
			m.close()
			return m, tea.Quit
		}
		return m, m.drain()
	}
	return m, nil
}

func (m *appModel) updatePage(msg tea.KeyMsg) (quit bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Palette):
		m.queue(m.openPalette())
	case key.Matches(msg, m.keys.Up):
		m.moveProject(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveProject(1)
	case key.Matches(msg, m.keys.NextTag):
		m.cycleTag(1)
	case key.Matches(msg, m.keys.PrevTag):
		m.cycleTag(-1)
	case key.Matches(msg, m.keys.Open):
		ps := m.visibleProjects()
		if m.projectIdx < len(ps) {
			m.openCaseStudy(ps[m.projectIdx])
		}
	case key.Matches(msg, m.keys.PageUp):
		m.page.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.page.HalfViewDown()
	case key.Matches(msg, m.keys.Top):
		m.ScrollTo(palette.AnchorTop)
	case key.Matches(msg, m.keys.Bottom):
		m.page.GotoBottom()
	case key.Matches(msg, m.keys.Theme):
		m.SetDark(!m.theme.Get())
	case key.Matches(msg, m.keys.Copy):
		m.queue(m.copyText("email", m.reg.Profile.Links.EmailAddress()))
	default:
		// 0 selects All, 1..9 the n-th tag.
		if s := msg.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			tags := m.filter.Tags()
			if i := int(s[0] - '0'); i < len(tags) {
				m.setActiveTag(tags[i])
			}
		}
	}
	return false
}

func (m *appModel) updatePalette(msg tea.KeyMsg) {
	n := len(m.palette.Visible(m.actions()))
	switch msg.String() {
	case "up", "ctrl+p":
		m.palette.Move(-1, n)
		return
	case "down", "ctrl+n", "tab":
		m.palette.Move(1, n)
		return
	case "enter":
		m.selectPaletteAction()
		return
	case "ctrl+y":
		// Copies the highlighted action's hint: the address or URL it opens.
		if visible := m.palette.Visible(m.actions()); len(visible) > 0 {
			a := visible[m.palette.Cursor(len(visible))]
			m.queue(m.copyText(strings.ToLower(a.Label), a.Hint))
		}
		return
	}
	// Held until the deferred focus lands, then replayed in order.
	if !m.input.Focused() {
		m.typed = append(m.typed, msg)
		return
	}
	m.typeIntoPalette(msg)
}

func (m *appModel) typeIntoPalette(msg tea.KeyMsg) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.queue(cmd)
	m.palette.SetQuery(m.input.Value())
}

func (m *appModel) updateCaseStudy(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.CloseModal):
		m.host.Backdrop()
		return
	case key.Matches(msg, m.keys.OpenLink):
		if m.selected == nil {
			return
		}
		for _, u := range []string{m.selected.Demo, m.selected.Repo} {
			if strings.TrimSpace(u) != "" {
				m.OpenLink(u, true)
				return
			}
		}
		return
	}
	var cmd tea.Cmd
	m.study, cmd = m.study.Update(msg)
	m.queue(cmd)
}

func (m *appModel) updateMouse(msg tea.MouseMsg) {
	if !m.host.IsOpen() {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		m.queue(cmd)
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		if _, ok := m.host.Content().(caseStudyContent); ok {
			var cmd tea.Cmd
			m.study, cmd = m.study.Update(msg)
			m.queue(cmd)
		}
		return
	}
	// A click outside the box is a backdrop activation.
	box := m.renderModal()
	left, top := modalRect(m.width, m.height, lipgloss.Width(box), lipgloss.Height(box))
	inside := msg.X >= left && msg.X < left+lipgloss.Width(box) &&
		msg.Y >= top && msg.Y < top+lipgloss.Height(box)
	if !inside {
		m.host.Backdrop()
		return
	}
	if _, ok := m.host.Content().(paletteContent); ok {
		if i, ok := m.paletteRowAt(msg.Y, top); ok {
			m.selectPaletteActionAt(i)
		}
	}
}

// paletteRowAt maps a screen row to a visible action index. boxTop is the
// palette box's first screen row.
func (m *appModel) paletteRowAt(y, boxTop int) (int, bool) {
	header := renderModalHeader(modalBodyWidth(m.width), paletteKicker, paletteContent{}.Title())
	// Top border, header, blank, search line, blank.
	first := boxTop + 1 + lipgloss.Height(header) + 1 + 1 + 1
	i := y - first
	if i < 0 || i >= len(m.palette.Visible(m.actions())) {
		return 0, false
	}
	return i, true
}

func (m *appModel) resize() {
	w := m.contentWidth()
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	m.page.Width = w
	m.page.Height = h
	m.help.Width = w
	m.input.Width = modalBodyWidth(m.width) - 8
	m.refreshPage()
	m.refreshStudy()
}

func (m *appModel) contentWidth() int {
	w := m.width
	if w > maxContentW {
		w = maxContentW
	}
	if w < 20 {
		w = 20
	}
	return w
}
