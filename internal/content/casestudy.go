package content

import (
	"fmt"
	"strings"
)

// CaseStudyMarkdown renders the detail view of a project as markdown. The TUI
// renders it with glamour and the web surface with goldmark.
func CaseStudyMarkdown(p Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if y := strings.TrimSpace(p.Year); y != "" {
		fmt.Fprintf(&b, "*%s*\n\n", y)
	}
	if h := strings.TrimSpace(p.Highlight); h != "" {
		fmt.Fprintf(&b, "> %s\n\n", h)
	}
	if d := strings.TrimSpace(p.Description); d != "" {
		b.WriteString(d)
		b.WriteString("\n\n")
	}
	if len(p.Bullets) > 0 {
		b.WriteString("## Highlights\n\n")
		for _, x := range p.Bullets {
			fmt.Fprintf(&b, "- %s\n", x)
		}
		b.WriteString("\n")
	}
	if len(p.Stack) > 0 {
		b.WriteString("## Stack\n\n")
		parts := make([]string, 0, len(p.Stack))
		for _, s := range p.Stack {
			parts = append(parts, "`"+s+"`")
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n\n")
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(p.Tags, ", "))
	}
	var links []string
	if u := strings.TrimSpace(p.Demo); u != "" {
		links = append(links, fmt.Sprintf("[Demo](%s)", u))
	}
	if u := strings.TrimSpace(p.Repo); u != "" {
		links = append(links, fmt.Sprintf("[Repository](%s)", u))
	}
	if len(links) > 0 {
		b.WriteString(strings.Join(links, " · "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
