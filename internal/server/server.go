package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formpdf/internal/logging"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/renderers/page"
	"github.com/goliatone/go-formpdf/pkg/store"
)

// Paths mounted by the server.
const (
	PathForm        = "/"
	PathPreview     = "/preview"
	PathBack        = "/preview/back"
	PathDownload    = "/preview/download"
	PathAPIValidate = "/api/validate"
	PathAPIPDF      = "/api/pdf"
	PathHealth      = "/healthz"
	PathAssets      = "/assets/"
)

const (
	defaultGrace   = 10 * time.Second
	maxBodyBytes   = 1 << 20
	readHeaderWait = 10 * time.Second
)

// Server is the single-user HTTP surface. It holds no state of its own; the
// record between screens lives in the store, keyed by the session cookie.
type Server struct {
	store    store.Store
	sessions *store.Sessions
	exporter render.Renderer
	screens  *render.Registry

	screenList []render.Renderer
	form       model.FormModel
	formSet    bool
	theme      *theme.RendererConfig
	assets     fs.FS
	logger     *zap.Logger
	addr       string
	grace      time.Duration
	janitor    time.Duration
}

// New wires a server around a store, a session manager and a PDF exporter.
func New(st store.Store, sessions *store.Sessions, exporter render.Renderer, options ...Option) (*Server, error) {
	if st == nil {
		return nil, errors.New("server: store is required")
	}
	if sessions == nil {
		return nil, errors.New("server: sessions are required")
	}
	if exporter == nil {
		return nil, errors.New("server: exporter is required")
	}

	s := &Server{
		store:    st,
		sessions: sessions,
		exporter: exporter,
		assets:   page.AssetsFS(),
		logger:   zap.NewNop(),
		grace:    defaultGrace,
		janitor:  time.Minute,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if !s.formSet {
		form, err := model.ContactForm(context.Background())
		if err != nil {
			return nil, fmt.Errorf("server: build form model: %w", err)
		}
		s.form = form
	}
	if len(s.screenList) == 0 {
		screens, err := page.NewAll()
		if err != nil {
			return nil, fmt.Errorf("server: configure screens: %w", err)
		}
		s.screenList = screens
	}
	registry, err := render.NewRegistry(s.screenList...)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	for _, name := range []string{page.FormName, page.PreviewName} {
		if !registry.Has(name) {
			return nil, fmt.Errorf("server: screen %q is not registered", name)
		}
	}
	s.screens = registry
	return s, nil
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+PathForm+"{$}", s.withSession(s.handleForm))
	mux.Handle("POST "+PathForm+"{$}", s.withSession(s.handleSubmit))
	mux.Handle("GET "+PathPreview, s.withSession(s.handlePreview))
	mux.Handle("GET "+PathDownload, s.withSession(s.handleDownload))
	mux.Handle("POST "+PathBack, s.withSession(s.handleBack))
	mux.HandleFunc("POST "+PathAPIValidate, s.handleAPIValidate)
	mux.HandleFunc("POST "+PathAPIPDF, s.handleAPIPDF)
	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET "+PathAssets, http.StripPrefix(PathAssets, http.FileServerFS(s.assets)))

	return logging.Middleware(s.logger)(s.recoverer(mux))
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down within
// the grace period. An in-memory store is swept alongside.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderWait,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down", zap.Duration("grace", s.grace))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	})
	if mem, ok := s.store.(*store.Memory); ok && s.janitor > 0 {
		g.Go(func() error {
			return mem.RunJanitor(gctx, s.janitor)
		})
	}
	return g.Wait()
}

func (s *Server) withSession(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.sessions.Ensure(w, r)
		if err != nil {
			s.logger.Error("session unavailable", zap.Error(err))
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		ctx := store.WithSessionID(r.Context(), id)
		ctx = store.WithExchange(ctx, w, r)
		next(w, r.WithContext(ctx))
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.logger.Error("panic serving request",
					zap.Any("panic", v),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
