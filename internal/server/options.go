package server

import (
	"io/fs"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithGrace sets how long shutdown waits for in-flight requests.
func WithGrace(grace time.Duration) Option {
	return func(s *Server) {
		if grace > 0 {
			s.grace = grace
		}
	}
}

// WithScreens replaces the HTML renderers. The set must include the form
// and preview screens.
func WithScreens(renderers ...render.Renderer) Option {
	return func(s *Server) {
		s.screenList = renderers
	}
}

// WithForm replaces the form model used for rendering and validation.
func WithForm(form model.FormModel) Option {
	return func(s *Server) {
		s.form = form
		s.formSet = true
	}
}

// WithTheme sets the theme handed to every renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithAssets replaces the files served under /assets/.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		if files != nil {
			s.assets = files
		}
	}
}

// WithJanitorInterval sets how often an in-memory store is swept while the
// server runs. Zero disables the sweep.
func WithJanitorInterval(interval time.Duration) Option {
	return func(s *Server) {
		s.janitor = interval
	}
}
