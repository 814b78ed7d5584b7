// Package formpdf collects contact details, validates them and exports them
// as a PDF document. The root package bundles the common entry points; the
// pkg/ packages expose each stage on its own.
package formpdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/renderers/chrome"
	"github.com/goliatone/go-formpdf/pkg/renderers/pdf"
	"github.com/goliatone/go-formpdf/pkg/validation"
)

// Record aliases contact.Record for callers that only import the root
// package.
type Record = contact.Record

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Result aliases validation.Result.
type Result = validation.Result

// Export engines.
const (
	EngineNative = "native"
	EngineChrome = "chrome"
)

// ExportOptions selects and tunes the PDF engine.
type ExportOptions struct {
	// Engine is EngineNative (default) or EngineChrome.
	Engine string
	// WrapColumns sets the description wrap width of the native engine.
	WrapColumns int

	ChromePath      string
	ChromeDownload  bool
	ChromeNoSandbox bool
	ChromeTimeout   time.Duration
}

// ValidationError reports a record that failed validation.
type ValidationError struct {
	Result Result
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Result.Issues))
	for _, issue := range e.Result.Issues {
		messages = append(messages, issue.Field+": "+issue.Message)
	}
	return "formpdf: invalid record: " + strings.Join(messages, "; ")
}

// FormModel returns the form model built from the embedded contact schema.
func FormModel(ctx context.Context) (model.FormModel, error) {
	return model.ContactForm(ctx)
}

// Validate checks rec against the contact form rules.
func Validate(ctx context.Context, rec Record) (Result, error) {
	return validation.ValidateRecord(ctx, rec)
}

// NewExporter builds the PDF engine named by opts.Engine. Release it with
// CloseExporter.
func NewExporter(opts ExportOptions) (render.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Engine)) {
	case "", EngineNative, pdf.Name:
		return pdf.NewRenderer(pdf.WithWrapColumns(opts.WrapColumns)), nil
	case EngineChrome:
		options := []chrome.Option{
			chrome.WithChromePath(opts.ChromePath),
			chrome.WithDownload(opts.ChromeDownload),
			chrome.WithNoSandbox(opts.ChromeNoSandbox),
		}
		if opts.ChromeTimeout > 0 {
			options = append(options, chrome.WithTimeout(opts.ChromeTimeout))
		}
		return chrome.New(options...)
	default:
		return nil, fmt.Errorf("formpdf: unknown engine %q", opts.Engine)
	}
}

// CloseExporter releases engine resources such as a running browser.
func CloseExporter(r render.Renderer) error {
	if c, ok := r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Export validates rec and writes its PDF to w. A record that fails
// validation is reported as *ValidationError and nothing is written.
func Export(ctx context.Context, w io.Writer, rec Record, opts ExportOptions) (err error) {
	form, err := model.ContactForm(ctx)
	if err != nil {
		return fmt.Errorf("formpdf: %w", err)
	}
	result := validation.Validate(form, rec.Values())
	if !result.Valid {
		return &ValidationError{Result: result}
	}

	exporter, err := NewExporter(opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, CloseExporter(exporter))
	}()

	out, err := exporter.Render(ctx, form, render.RenderOptions{Record: rec.Normalize()})
	if err != nil {
		return fmt.Errorf("formpdf: export: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("formpdf: write: %w", err)
	}
	return nil
}
