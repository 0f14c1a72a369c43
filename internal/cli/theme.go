package cli

import (
	"fmt"
	"strconv"
	"strings"

	"folio-cli/internal/palette"
	"folio-cli/internal/prefs"

	"github.com/spf13/cobra"
)

type themeState struct {
	DarkMode bool   `json:"darkMode" yaml:"dark_mode"`
	Toggle   string `json:"toggleLabel" yaml:"toggle_label"`
	Degraded bool   `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

func newThemeState(t *prefs.Theme) envelope {
	st := themeState{
		DarkMode: t.Get(),
		Toggle:   palette.ThemeLabel(t.Get()),
		Degraded: t.Degraded(),
	}
	return envelope{
		Data: st,
		text: func() string {
			if st.DarkMode {
				return "dark"
			}
			return "light"
		},
	}
}

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the persisted dark-mode preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return themeRun(cmd, app, func(*prefs.Theme) error { return nil })
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the current preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return themeRun(cmd, app, func(*prefs.Theme) error { return nil })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <true|false|dark|light>",
		Short: "Set dark mode on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dark, err := parseDark(args[0])
			if err != nil {
				return err
			}
			return themeRun(cmd, app, func(t *prefs.Theme) error {
				t.Set(dark)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Flip dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return themeRun(cmd, app, func(t *prefs.Theme) error {
				t.Toggle()
				return nil
			})
		},
	})
	return cmd
}

func themeRun(cmd *cobra.Command, app *App, change func(*prefs.Theme) error) error {
	theme, closeTheme := openTheme(cmd.Context(), app, nil)
	defer closeTheme()
	if err := change(theme); err != nil {
		return err
	}
	return writeOut(cmd, app, newThemeState(theme))
}

func parseDark(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "on":
		return true, nil
	case "light", "off":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("theme set: want true|false|dark|light, got %q", s)
	}
	return v, nil
}
