package page

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	rendertemplate "github.com/goliatone/go-formpdf/pkg/render/template"
	"github.com/goliatone/go-formpdf/pkg/render/template/gotemplate"
)

// Renderer names registered by this package.
const (
	FormName    = "form"
	PreviewName = "preview"
	PrintName   = "print"
)

var templateNames = map[string]string{
	FormName:    "templates/form",
	PreviewName: "templates/preview",
	PrintName:   "templates/print",
}

// Option configures the page renderers.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	routes           Routes
	inlineStyles     bool
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overrides individual templates from a directory on disk.
// Templates missing from the directory fall back to the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTheme sets the theme used when RenderOptions carries none.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithRoutes overrides the URLs the screens post and link to.
func WithRoutes(routes Routes) Option {
	return func(cfg *config) {
		if routes.Form != "" {
			cfg.routes.Form = routes.Form
		}
		if routes.Back != "" {
			cfg.routes.Back = routes.Back
		}
		if routes.Download != "" {
			cfg.routes.Download = routes.Download
		}
	}
}

// WithInlineStyles embeds the stylesheet in every screen instead of linking
// it, for output that must stand alone.
func WithInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders one of the HTML screens.
type Renderer struct {
	name      string
	template  string
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	routes    Routes
	inline    bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer registered under name (FormName, PreviewName
// or PrintName).
func New(name string, options ...Option) (*Renderer, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	return cfg.renderer(name)
}

// NewAll constructs the form, preview and print renderers sharing a single
// template engine.
func NewAll(options ...Option) ([]render.Renderer, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	out := make([]render.Renderer, 0, len(templateNames))
	for _, name := range []string{FormName, PreviewName, PrintName} {
		r, err := cfg.renderer(name)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func newConfig(options []Option) (*config, error) {
	cfg := &config{templateFS: TemplatesFS(), routes: DefaultRoutes}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine, err := gotemplate.New(
		gotemplate.WithBaseDir(cfg.templateDir),
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("page renderer: configure template renderer: %w", err)
	}
	cfg.templateRenderer = engine

	if cfg.theme == nil {
		resolved, err := ResolveTheme(DefaultTheme, DefaultVariant)
		if err != nil {
			return nil, fmt.Errorf("page renderer: resolve default theme: %w", err)
		}
		cfg.theme = resolved
	}
	return cfg, nil
}

func (cfg *config) renderer(name string) (*Renderer, error) {
	tmpl, ok := templateNames[name]
	if !ok {
		return nil, fmt.Errorf("page renderer: unknown screen %q", name)
	}
	return &Renderer{
		name:      name,
		template:  tmpl,
		templates: cfg.templateRenderer,
		theme:     cfg.theme,
		routes:    cfg.routes,
		inline:    cfg.inlineStyles || name == PrintName,
	}, nil
}

func (r *Renderer) Name() string        { return r.name }
func (r *Renderer) ContentType() string { return render.ContentTypeHTML }

// Render executes the screen template. The form screen shows
// options.Record as prefilled values and options.Errors inline; the preview
// and print screens show options.Record.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("page renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := options.Theme
	if cfg == nil {
		cfg = r.theme
	}
	tv := buildThemeView(cfg)
	data := map[string]any{
		"back_icon":     Icon("chevron-left"),
		"download_icon": Icon("download"),
	}
	if r.inline {
		data["stylesheet"] = defaultStylesheet()
		tv.StylesheetURL = ""
	}
	data["theme"] = tv

	switch r.name {
	case FormName:
		data["form"] = buildFormView(form, options, r.routes)
	default:
		data["preview"] = buildPreviewView(form, options.Record, r.routes)
	}

	out, err := r.templates.RenderTemplate(r.template, data)
	if err != nil {
		return nil, fmt.Errorf("page renderer: render %s: %w", r.name, err)
	}
	return []byte(out), nil
}
