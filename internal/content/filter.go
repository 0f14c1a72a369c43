package content

import "strings"

// AllTag selects every project.
const AllTag = "All"

func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns AllTag followed by every project tag in first-seen order.
func Tags(projects []Project) []string {
	out := []string{AllTag}
	seen := map[string]bool{AllTag: true}
	for _, p := range projects {
		for _, t := range p.Tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// VisibleProjects returns, in original order, the projects tagged with tag.
// AllTag yields the whole list; an unknown tag yields an empty list.
func VisibleProjects(tag string, projects []Project) []Project {
	if tag == AllTag {
		out := make([]Project, len(projects))
		copy(out, projects)
		return out
	}
	out := []Project{}
	for _, p := range projects {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Filter holds the active tag for a project list.
type Filter struct {
	projects []Project
	tags     []string
	active   string
}

func NewFilter(projects []Project) Filter {
	return Filter{
		projects: projects,
		tags:     Tags(projects),
		active:   AllTag,
	}
}

// SetActiveTag accepts any string. Tags outside Tags() simply match nothing.
func (f *Filter) SetActiveTag(tag string) {
	f.active = tag
}

func (f Filter) Active() string { return f.active }

func (f Filter) Tags() []string { return f.tags }

func (f Filter) Visible() []Project {
	return VisibleProjects(f.active, f.projects)
}

// Known reports whether tag is AllTag or carried by at least one project.
func (f Filter) Known(tag string) bool {
	for _, t := range f.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Cycle moves the active tag by delta positions through Tags(), wrapping around.
// An unknown active tag restarts from AllTag.
func (f *Filter) Cycle(delta int) {
	n := len(f.tags)
	if n == 0 {
		return
	}
	idx := 0
	for i, t := range f.tags {
		if t == f.active {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%n + n) % n
	f.active = f.tags[idx]
}

// Lookup resolves a tag case-insensitively against Tags(), so CLI users can type
// "qa" for "QA". Unmatched input is returned unchanged.
func (f Filter) Lookup(tag string) string {
	tag = strings.TrimSpace(tag)
	for _, t := range f.tags {
		if strings.EqualFold(t, tag) {
			return t
		}
	}
	return tag
}
