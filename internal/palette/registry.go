package palette

import (
	"strings"

	"folio-cli/internal/content"
)

// Anchor names a scroll target on the portfolio page.
type Anchor string

const (
	AnchorTop        Anchor = "top"
	AnchorSkills     Anchor = "skills"
	AnchorProjects   Anchor = "projects"
	AnchorExperience Anchor = "experience"
)

// Env is the host environment action effects operate on.
type Env interface {
	ScrollTo(anchor Anchor)
	// OpenLink opens url with the platform opener. newContext mirrors a
	// browser's "new tab"; hosts without that notion ignore it.
	OpenLink(url string, newContext bool)
	SetDark(dark bool)
}

// ThemeLabel is the toggle action's label for the current mode.
func ThemeLabel(dark bool) string {
	if dark {
		return "Switch to Light Mode"
	}
	return "Switch to Dark Mode"
}

// Actions derives the registry from current state. It is recomputed whenever
// dark (or the profile) changes instead of being cached.
func Actions(env Env, profile content.Profile, dark bool) []Action {
	links := profile.Links
	out := []Action{
		{
			Label:  "Go to Projects",
			Hint:   "Scroll to projects section",
			Effect: func() { env.ScrollTo(AnchorProjects) },
		},
		{
			Label:  "Go to Experience",
			Hint:   "Scroll to experience section",
			Effect: func() { env.ScrollTo(AnchorExperience) },
		},
		{
			Label:  "Go to Skills",
			Hint:   "Scroll to core skills",
			Effect: func() { env.ScrollTo(AnchorSkills) },
		},
	}
	if strings.TrimSpace(links.Email) != "" {
		out = append(out, Action{
			Label:  "Email me",
			Hint:   links.EmailAddress(),
			Effect: func() { env.OpenLink(links.Email, false) },
		})
	}
	if strings.TrimSpace(links.LinkedIn) != "" {
		out = append(out, Action{
			Label:  "Open LinkedIn",
			Hint:   links.LinkedIn,
			Effect: func() { env.OpenLink(links.LinkedIn, true) },
		})
	}
	if strings.TrimSpace(links.GitHub) != "" {
		out = append(out, Action{
			Label:  "Open GitHub",
			Hint:   links.GitHub,
			Effect: func() { env.OpenLink(links.GitHub, true) },
		})
	}
	if strings.TrimSpace(links.CV) != "" {
		out = append(out, Action{
			Label:  "Download CV",
			Hint:   links.CV,
			Effect: func() { env.OpenLink(links.CV, true) },
		})
	}
	out = append(out,
		Action{
			Label:  ThemeLabel(dark),
			Hint:   "Toggle theme",
			Effect: func() { env.SetDark(!dark) },
		},
		Action{
			Label:  "Go to Top",
			Hint:   "Scroll back to the profile",
			Effect: func() { env.ScrollTo(AnchorTop) },
		},
	)
	return out
}

// Target is what an action's effect would do, captured without doing it.
type Target struct {
	Kind       string `json:"kind" yaml:"kind"` // scroll, link or theme
	Anchor     Anchor `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	NewContext bool   `json:"newContext,omitempty" yaml:"new_context,omitempty"`
	Dark       *bool  `json:"dark,omitempty" yaml:"dark,omitempty"`
}

// Entry is a registry action as data, for surfaces that cannot run effects
// in-process (the CLI listing, the HTML page).
type Entry struct {
	Label  string `json:"label" yaml:"label"`
	Hint   string `json:"hint,omitempty" yaml:"hint,omitempty"`
	Target Target `json:"target" yaml:"target"`
}

type recorder struct{ t Target }

func (r *recorder) ScrollTo(a Anchor) { r.t = Target{Kind: "scroll", Anchor: a} }

func (r *recorder) OpenLink(url string, newContext bool) {
	r.t = Target{Kind: "link", URL: url, NewContext: newContext}
}

func (r *recorder) SetDark(dark bool) { r.t = Target{Kind: "theme", Dark: &dark} }

// Describe returns the registry entries matching query, in registry order.
func Describe(profile content.Profile, dark bool, query string) []Entry {
	rec := &recorder{}
	actions := Filter(Actions(rec, profile, dark), query)
	out := make([]Entry, 0, len(actions))
	for _, a := range actions {
		rec.t = Target{}
		run(a)
		out = append(out, Entry{Label: a.Label, Hint: a.Hint, Target: rec.t})
	}
	return out
}
