package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/font/type1"
	"seehuhn.de/go/pdf/graphics/color"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/layout"
)

// Engine renders contact records to PDF.
type Engine struct {
	layout []layout.Option

	fontsOnce sync.Once
	regular   *type1.Instance
	bold      *type1.Instance
}

// New constructs an Engine.
func New(options ...Option) *Engine {
	cfg := newConfig(options...)
	var opts []layout.Option
	if cfg.wrapColumns > 0 {
		opts = append(opts, layout.WithWrapColumns(cfg.wrapColumns))
	}
	if cfg.title != "" {
		opts = append(opts, layout.WithTitle(cfg.title))
	}
	return &Engine{layout: opts}
}

// Render lays rec out and returns the PDF bytes.
func (e *Engine) Render(ctx context.Context, rec contact.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(ctx, &buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write lays rec out and streams the PDF to w.
func (e *Engine) Write(ctx context.Context, w io.Writer, rec contact.Record) error {
	return e.WriteDocument(ctx, w, layout.Build(rec.Normalize(), e.layout...))
}

// WriteDocument writes an already laid-out document.
func (e *Engine) WriteDocument(ctx context.Context, w io.Writer, doc layout.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	regular, bold := e.fonts()

	paper := &pdf.Rectangle{URx: doc.PageWidth * layout.PointsPerMM, URy: doc.PageHeight * layout.PointsPerMM}
	out, err := document.WriteMultiPage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("pdf: open document: %w", err)
	}

	for i, content := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := out.AddPage()
		page.SetFillColor(color.Black)
		for _, op := range content.Ops {
			if op.Text == "" {
				continue
			}
			F := regular
			if op.Bold {
				F = bold
			}
			x, y := toPoints(doc, op.X, op.Y)
			page.TextBegin()
			page.TextSetFont(F, op.Size)
			page.TextFirstLine(x, y)
			page.TextShow(op.Text)
			page.TextEnd()
		}
		if err := page.Close(); err != nil {
			return fmt.Errorf("pdf: page %d: %w", i+1, err)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("pdf: close document: %w", err)
	}
	return nil
}

// fonts loads the two standard faces once.
func (e *Engine) fonts() (*type1.Instance, *type1.Instance) {
	e.fontsOnce.Do(func() {
		e.regular = standard.Helvetica.New()
		e.bold = standard.HelveticaBold.New()
	})
	return e.regular, e.bold
}

// toPoints converts top-left millimetre coordinates to PDF user space.
func toPoints(doc layout.Document, x, y float64) (float64, float64) {
	return x * layout.PointsPerMM, (doc.PageHeight - y) * layout.PointsPerMM
}
