package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"folio-cli/internal/config"
	"folio-cli/internal/content"
	"folio-cli/internal/format"
	"folio-cli/internal/prefs"
	"folio-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	StateDir   string
	Backend    string
	Content    string
	PrettyJSON bool
	Format     string

	cfg *config.Config
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Terminal portfolio with a command palette",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the portfolio (press ctrl+k for the command palette)
  folio

  # Scriptable commands
  folio projects --tag QA
  folio actions link

  # Direct case-study lookup (shortcut for: folio show <project-id>)
  folio qa-simrs
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolveConfig(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.StateDir, "state-dir", "", "Directory holding the preference store (default: ~/.folio)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Preference backend (sqlite|file|memory)")
	cmd.PersistentFlags().StringVar(&app.Content, "content", "", "Portfolio YAML document (default: built-in)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|yaml|text)")

	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newActionsCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// resolveConfig resolves configuration: defaults, ~/.folio/config.yaml and FOLIO_* env
// come from config.Load; explicitly set flags win over all of them.
func (app *App) resolveConfig(cmd *cobra.Command) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("state-dir") {
		cfg.StateDir = app.StateDir
	}
	if flags.Changed("backend") {
		cfg.Backend = app.Backend
	}
	if flags.Changed("content") {
		cfg.Content = app.Content
	}
	if flags.Changed("format") {
		cfg.Format = app.Format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.StateDir, app.Backend, app.Content, app.Format = cfg.StateDir, cfg.Backend, cfg.Content, cfg.Format
	app.cfg = cfg
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	logger, closeLog, err := newFileLogger(app.cfg.DebugLog, app.cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	app.log = logger

	reg, err := content.Load(app.Content)
	if err != nil {
		return err
	}
	theme, closeTheme := openTheme(cmd.Context(), app, tui.ApplyPresentation)
	defer closeTheme()

	logger.Info("tui start", "backend", app.Backend, "state_dir", app.StateDir)
	return tui.Run(tui.Options{
		Registry: reg,
		Theme:    theme,
		Logger:   logger,
	})
}

// openTheme opens the configured preference store and wraps it in a Theme. A
// store that cannot be opened is logged and replaced by an in-memory one.
func openTheme(ctx context.Context, app *App, apply func(bool)) (*prefs.Theme, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := app.logger()
	backend, err := prefs.ParseBackend(app.Backend)
	if err != nil {
		logger.Warn("theme: bad backend; using memory", "err", err)
		backend = prefs.BackendMemory
	}
	if backend != prefs.BackendMemory {
		if err := os.MkdirAll(app.StateDir, 0o755); err != nil {
			logger.Warn("theme: state dir unavailable; using memory", "dir", app.StateDir, "err", err)
			backend = prefs.BackendMemory
		}
	}
	store, err := prefs.Open(ctx, backend, app.StateDir)
	if err != nil {
		logger.Warn("theme: opening store failed; using memory", "backend", backend, "err", err)
		store = prefs.NewMemoryStore()
	}
	return prefs.NewTheme(store, apply, logger), func() { _ = store.Close() }
}

func (app *App) logger() *slog.Logger {
	if app.log != nil {
		return app.log
	}
	level := parseLevel("info")
	if app.cfg != nil {
		level = parseLevel(app.cfg.LogLevel)
	}
	app.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return app.log
}

// newFileLogger logs to path, or discards when path is empty. The TUI owns the
// terminal, so it never logs to stderr.
func newFileLogger(path, level string) (*slog.Logger, func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("debug log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening debug log: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(h), func() { _ = f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func loadRegistry(app *App) (*content.Registry, error) {
	return content.Load(app.Content)
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
