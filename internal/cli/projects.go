package cli

import (
	"fmt"
	"strings"

	"folio-cli/internal/content"

	"github.com/spf13/cobra"
)

// envelope is the output shape of every command: {"data": ..., "meta": ...}.
// text renders the --format text form.
type envelope struct {
	Data any            `json:"data" yaml:"data"`
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`

	text func() string
}

func (e envelope) Text() string {
	if e.text == nil {
		return fmt.Sprint(e.Data)
	}
	return e.text()
}

func newProjectsCmd(app *App) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects, optionally filtered by tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(app)
			if err != nil {
				return err
			}
			f := content.NewFilter(reg.Projects)
			active := content.AllTag
			if strings.TrimSpace(tag) != "" {
				// Tags match case-insensitively on the command line; an unknown tag
				// yields an empty list, like selecting it in the UI would.
				active = f.Lookup(tag)
			}
			f.SetActiveTag(active)
			visible := f.Visible()
			return writeOut(cmd, app, envelope{
				Data: visible,
				Meta: map[string]any{"tag": active, "count": len(visible)},
				text: func() string { return projectsText(visible) },
			})
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Only projects carrying this tag (default: All)")
	return cmd
}

func newTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List project tags (All first, then first-seen order)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(app)
			if err != nil {
				return err
			}
			tags := content.Tags(reg.Projects)
			return writeOut(cmd, app, envelope{
				Data: tags,
				text: func() string { return strings.Join(tags, "\n") },
			})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project's case study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(app)
			if err != nil {
				return err
			}
			p, err := reg.Project(args[0])
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}
			md := content.CaseStudyMarkdown(p)
			return writeOut(cmd, app, envelope{
				Data: p,
				Meta: map[string]any{"markdown": md},
				text: func() string { return md },
			})
		},
	}
}

func projectsText(ps []content.Project) string {
	if len(ps) == 0 {
		return "(no projects)"
	}
	var b strings.Builder
	for _, p := range ps {
		fmt.Fprintf(&b, "%-12s %s (%s)\n", p.ID, p.Title, p.Year)
		fmt.Fprintf(&b, "%12s %s\n", "", strings.Join(p.Tags, ", "))
	}
	return b.String()
}
