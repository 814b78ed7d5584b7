package chrome

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	pagerenderer "github.com/goliatone/go-formpdf/pkg/renderers/page"
)

// Name identifies the browser engine in the renderer registry.
const Name = "chrome"

// Engine prints HTML to PDF with a shared headless browser. It is safe for
// concurrent use; each conversion runs in its own tab.
type Engine struct {
	cfg config

	mu            sync.Mutex
	started       bool
	closed        bool
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

var _ render.Renderer = (*Engine)(nil)

// New constructs an Engine. The browser is not launched until the first
// conversion or an explicit Start.
func New(options ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.html == nil {
		html, err := pagerenderer.New(pagerenderer.PrintName)
		if err != nil {
			return nil, fmt.Errorf("chrome: configure print renderer: %w", err)
		}
		cfg.html = html
	}
	return &Engine{cfg: cfg}, nil
}

func (e *Engine) Name() string        { return Name }
func (e *Engine) ContentType() string { return render.ContentTypePDF }

// Render prints the record in options.Record.
func (e *Engine) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}
	html, err := e.cfg.html.Render(ctx, form, render.RenderOptions{
		Record: options.Record.Normalize(),
		Theme:  options.Theme,
	})
	if err != nil {
		return nil, fmt.Errorf("chrome: render html: %w", err)
	}
	return e.Convert(ctx, string(html))
}

// RenderRecord prints a record with the bundled contact form model.
func (e *Engine) RenderRecord(ctx context.Context, rec contact.Record) ([]byte, error) {
	form, err := model.ContactForm(ctx)
	if err != nil {
		return nil, err
	}
	return e.Render(ctx, form, render.RenderOptions{Record: rec})
}

// Start launches the browser so configuration errors surface early.
// Calling Start on a running engine is a no-op.
func (e *Engine) Start() error {
	_, err := e.browser()
	return err
}

// Convert prints an HTML document to PDF.
func (e *Engine) Convert(ctx context.Context, html string) ([]byte, error) {
	browserCtx, err := e.browser()
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "formpdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("chrome: creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("chrome: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("chrome: closing temp file: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("chrome: resolving path: %w", err)
	}

	if e.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()

	// The tab context descends from the browser, not the caller, so cancel
	// it when the caller gives up.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+abs),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPaperWidth(e.cfg.paperWidth).
				WithPaperHeight(e.cfg.paperHeight).
				WithPrintBackground(true).
				Do(ctx)
			return err
		}),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("chrome: conversion failed: %w", ctxErr)
		}
		return nil, fmt.Errorf("chrome: conversion failed: %w", err)
	}
	return buf, nil
}

// Close shuts the browser down. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	if e.started {
		e.browserCancel()
		e.allocCancel()
	}
	return nil
}

func (e *Engine) browser() (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrClosed
	}
	if e.started {
		return e.browserCtx, nil
	}

	path := e.cfg.chromePath
	if path == "" && e.cfg.download {
		resolved, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
	)
	if path != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(path))
	}
	if e.cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("chrome: starting browser: %w", err)
	}

	e.started = true
	e.allocCancel = allocCancel
	e.browserCtx = browserCtx
	e.browserCancel = browserCancel
	return browserCtx, nil
}

func (e *Engine) checkClosed() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}
