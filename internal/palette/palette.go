package palette

import (
	"fmt"
	"log/slog"
	"strings"
)

// Action is a named, invocable operation surfaced in the palette.
type Action struct {
	Label string
	// Hint is optional secondary text; it participates in matching.
	Hint   string
	Effect func()
}

// Normalize trims and lower-cases a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether the normalized query q selects a.
func (a Action) Matches(q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.Label), q) {
		return true
	}
	return a.Hint != "" && strings.Contains(strings.ToLower(a.Hint), q)
}

// Filter returns the actions matching query, in registry order. There is no
// ranking: a plain case-insensitive substring test over label and hint.
func Filter(actions []Action, query string) []Action {
	q := Normalize(query)
	if q == "" {
		return actions
	}
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.Matches(q) {
			out = append(out, a)
		}
	}
	return out
}

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Palette is the Closed/Open state machine plus the live query and cursor.
// The zero value is a closed palette.
type Palette struct {
	state   State
	query   string
	cursor  int
	seq     int
	focused bool
}

// Open resets the query and returns the sequence number the deferred focus
// request must present to Focus.
func (p *Palette) Open() int {
	p.state = Open
	p.query = ""
	p.cursor = 0
	p.focused = false
	p.seq++
	return p.seq
}

// Close is the single Open->Closed transition shared by selection, explicit
// dismissal and the cancel key.
func (p *Palette) Close() {
	p.state = Closed
	p.query = ""
	p.cursor = 0
	p.focused = false
	// Invalidate any focus request still in flight.
	p.seq++
}

func (p Palette) State() State { return p.state }

func (p Palette) IsOpen() bool { return p.state == Open }

// Focus applies a deferred focus request. It is a no-op (false) when the
// palette closed or reopened after the request was scheduled.
func (p *Palette) Focus(seq int) bool {
	if p.state != Open || seq != p.seq {
		return false
	}
	p.focused = true
	return true
}

func (p Palette) Focused() bool { return p.focused }

func (p Palette) Query() string { return p.query }

// SetQuery updates the live query; ignored while closed.
func (p *Palette) SetQuery(q string) {
	if p.state != Open {
		return
	}
	if q != p.query {
		p.cursor = 0
	}
	p.query = q
}

// Visible is the filtered action list for the current query.
func (p Palette) Visible(actions []Action) []Action {
	return Filter(actions, p.query)
}

// Cursor returns the highlighted index clamped to n visible actions.
func (p Palette) Cursor(n int) int {
	if n <= 0 {
		return 0
	}
	if p.cursor >= n {
		return n - 1
	}
	if p.cursor < 0 {
		return 0
	}
	return p.cursor
}

func (p *Palette) Move(delta int, n int) {
	if n <= 0 {
		p.cursor = 0
		return
	}
	c := p.Cursor(n) + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	p.cursor = c
}

// Select runs the visible action at index i exactly once and closes the
// palette. The palette closes even if the effect panics. It reports whether an
// action ran.
func (p *Palette) Select(actions []Action, i int) bool {
	if p.state != Open {
		return false
	}
	visible := p.Visible(actions)
	if i < 0 || i >= len(visible) {
		return false
	}
	defer p.Close()
	run(visible[i])
	return true
}

// SelectCurrent selects the highlighted action.
func (p *Palette) SelectCurrent(actions []Action) bool {
	n := len(p.Visible(actions))
	return p.Select(actions, p.Cursor(n))
}

func run(a Action) {
	if a.Effect == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("palette action panicked", "label", a.Label, "panic", fmt.Sprint(r))
		}
	}()
	a.Effect()
}
