package render

import (
	"context"

	"github.com/goliatone/go-formpdf/pkg/model"
)

// Renderer turns a form model plus per-request options into bytes: an HTML
// screen, a PDF document or terminal text.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}

// Content types produced by the bundled renderers.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain; charset=utf-8"
)
