package cli

import (
	"fmt"
	"strings"

	"folio-cli/internal/palette"

	"github.com/spf13/cobra"
)

func newActionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "actions [query...]",
		Short: "List command-palette actions matching a query",
		Long: strings.TrimSpace(`
List the command palette's actions, filtered the same way the palette filters
them: a case-insensitive substring match on label or hint, in registry order.
The theme action's label reflects the persisted preference.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(app)
			if err != nil {
				return err
			}
			theme, closeTheme := openTheme(cmd.Context(), app, nil)
			defer closeTheme()

			query := strings.Join(args, " ")
			entries := palette.Describe(reg.Profile, theme.Get(), query)
			return writeOut(cmd, app, envelope{
				Data: entries,
				Meta: map[string]any{"query": query, "count": len(entries)},
				text: func() string { return actionsText(entries) },
			})
		},
	}
}

func actionsText(entries []palette.Entry) string {
	if len(entries) == 0 {
		return "No results"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-22s %s\n", e.Label, e.Hint)
	}
	return b.String()
}
