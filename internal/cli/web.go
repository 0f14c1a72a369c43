package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"folio-cli/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio as HTML and JSON",
		Long: strings.TrimSpace(`
Serve the portfolio over HTTP: a server-rendered page (no JavaScript) with the
command palette as a list of links, case-study pages, and a small JSON API.
The theme preference is shared with the terminal UI.
`),
		Example: strings.TrimSpace(`
# Serve on the configured address (serve_addr, default :8080)
folio serve

# Serve on localhost only
folio serve --addr 127.0.0.1:3335
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = strings.TrimSpace(app.cfg.ServeAddr)
			}
			if listenAddr == "" {
				return errors.New("serve: missing --addr")
			}

			logger := app.logger()
			reg, err := loadRegistry(app)
			if err != nil {
				return err
			}
			theme, closeTheme := openTheme(cmd.Context(), app, nil)
			defer closeTheme()

			srv, err := web.NewServer(web.ServerConfig{
				Registry: reg,
				Theme:    theme,
				Logger:   logger,
				GinMode:  app.cfg.GinMode,
			})
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			_ = writeOut(cmd, app, envelope{
				Data: map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"backend":   app.Backend,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				text: func() string { return url },
			})
			logger.Info("serving", "url", url)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, ln, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default: serve_addr from config)")
	return cmd
}

// serve runs h on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	hs := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("serve: shutdown: %w", err)
		}
		return nil
	}
}
