package pdf

import (
	"context"

	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
)

// Name identifies the native engine in the renderer registry.
const Name = "pdf"

// Renderer adapts an Engine to render.Renderer. The record to export travels
// in RenderOptions.Record; the form model is not consulted.
type Renderer struct {
	engine *Engine
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer wraps a new Engine.
func NewRenderer(options ...Option) *Renderer {
	return &Renderer{engine: New(options...)}
}

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return render.ContentTypePDF }

func (r *Renderer) Render(ctx context.Context, _ model.FormModel, options render.RenderOptions) ([]byte, error) {
	return r.engine.Render(ctx, options.Record)
}

// Engine exposes the wrapped engine.
func (r *Renderer) Engine() *Engine {
	return r.engine
}
