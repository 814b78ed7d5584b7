package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpdf"
	"github.com/goliatone/go-formpdf/internal/server"
	"github.com/goliatone/go-formpdf/pkg/renderers/page"
	"github.com/goliatone/go-formpdf/pkg/store"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form and preview screens over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func (a *app) serve(ctx context.Context) (err error) {
	srv, cleanup, err := a.buildServer()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, cleanup())
	}()
	return srv.Run(ctx)
}

// buildServer wires the store, sessions, screens and exporter from the
// loaded configuration.
func (a *app) buildServer() (*server.Server, func() error, error) {
	cfg := a.cfg
	generated, err := cfg.EnsureSecret()
	if err != nil {
		return nil, nil, err
	}
	if generated {
		a.logger.Warn("store.secret is not set; sessions will not survive a restart")
	}

	st, err := store.Open(store.Options{
		Driver: cfg.Store.Driver,
		TTL:    cfg.StoreTTL(),
		Secret: cfg.Store.Secret,
		Redis: store.RedisOptions{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if c, ok := st.(*store.Cookie); ok {
		c.SetSecure(cfg.Server.Secure)
	}

	sessions, err := store.NewSessions(cfg.Store.Secret, cfg.Store.CookieName, cfg.StoreTTL())
	if err != nil {
		_ = store.Close(st)
		return nil, nil, err
	}
	sessions.SetSecure(cfg.Server.Secure)

	resolved, err := page.ResolveTheme(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		_ = store.Close(st)
		return nil, nil, fmt.Errorf("theme: %w", err)
	}
	screens, err := page.NewAll(page.WithTheme(resolved), page.WithTemplatesDir(cfg.Templates.Dir))
	if err != nil {
		_ = store.Close(st)
		return nil, nil, err
	}

	exporter, err := formpdf.NewExporter(a.exportOptions(""))
	if err != nil {
		_ = store.Close(st)
		return nil, nil, err
	}

	srv, err := server.New(st, sessions, exporter,
		server.WithLogger(a.logger),
		server.WithAddr(cfg.Server.Addr),
		server.WithGrace(cfg.GraceTimeout()),
		server.WithScreens(screens...),
		server.WithTheme(resolved),
	)
	if err != nil {
		_ = store.Close(st)
		_ = formpdf.CloseExporter(exporter)
		return nil, nil, err
	}

	a.logger.Info("configured",
		zap.String("store", cfg.Store.Driver),
		zap.String("engine", exporter.Name()),
		zap.String("theme", cfg.Theme.Name+"/"+cfg.Theme.Variant),
	)
	cleanup := func() error {
		return errors.Join(store.Close(st), formpdf.CloseExporter(exporter))
	}
	return srv, cleanup, nil
}
