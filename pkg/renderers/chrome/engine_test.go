package chrome

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/testsupport"
)

type failingRenderer struct{ err error }

func (failingRenderer) Name() string        { return "failing" }
func (failingRenderer) ContentType() string { return render.ContentTypeHTML }
func (f failingRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return nil, f.err
}

type captureRenderer struct{ got render.RenderOptions }

func (*captureRenderer) Name() string        { return "capture" }
func (*captureRenderer) ContentType() string { return render.ContentTypeHTML }
func (c *captureRenderer) Render(_ context.Context, _ model.FormModel, opts render.RenderOptions) ([]byte, error) {
	c.got = opts
	return nil, errors.New("stop before browser")
}

func TestEngine_ImplementsRenderer(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if engine.Name() != Name || engine.ContentType() != render.ContentTypePDF {
		t.Fatalf("unexpected identity %s %s", engine.Name(), engine.ContentType())
	}
	if _, err := render.NewRegistry(engine); err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestEngine_Defaults(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if engine.cfg.paperWidth != A4WidthInches || engine.cfg.paperHeight != A4HeightInches {
		t.Fatalf("expected A4 paper, got %vx%v", engine.cfg.paperWidth, engine.cfg.paperHeight)
	}
	if engine.cfg.timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", engine.cfg.timeout)
	}
	if engine.cfg.html == nil {
		t.Fatalf("expected default print renderer")
	}
}

func TestEngine_RenderPropagatesHTMLError(t *testing.T) {
	boom := errors.New("boom")
	engine, err := New(WithHTMLRenderer(failingRenderer{err: boom}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = engine.Render(context.Background(), model.FormModel{}, render.RenderOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected html error, got %v", err)
	}
	if engine.started {
		t.Fatalf("browser must not start when html rendering fails")
	}
}

func TestEngine_RenderNormalizesRecord(t *testing.T) {
	capture := &captureRenderer{}
	engine, err := New(WithHTMLRenderer(capture))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	rec := testsupport.ValidRecord()
	rec.Name = "  " + rec.Name + "  "
	_, _ = engine.Render(context.Background(), model.FormModel{}, render.RenderOptions{Record: rec})
	if capture.got.Record.Name != testsupport.ValidRecord().Name {
		t.Fatalf("expected trimmed name, got %q", capture.got.Record.Name)
	}
}

func TestEngine_ClosedEngineRejectsWork(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, err := engine.Convert(context.Background(), "<p>x</p>"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Convert, got %v", err)
	}
	if _, err := engine.RenderRecord(context.Background(), testsupport.ValidRecord()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from RenderRecord, got %v", err)
	}
	if err := engine.Start(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Start, got %v", err)
	}
}

func TestEngine_DownloadFailureSurfaces(t *testing.T) {
	original := resolveBrowser
	t.Cleanup(func() { resolveBrowser = original })
	boom := errors.New("offline")
	resolveBrowser = func() (string, error) { return "", boom }

	engine, err := New(WithDownload(true))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer engine.Close()
	if err := engine.Start(); !errors.Is(err, boom) {
		t.Fatalf("expected download error, got %v", err)
	}
}

func TestWithPaperSize_IgnoresInvalidValues(t *testing.T) {
	cfg := defaultConfig()
	WithPaperSize(0, 5)(&cfg)
	if cfg.paperWidth != A4WidthInches {
		t.Fatalf("expected invalid size to be ignored")
	}
	WithPaperSize(8.5, 11)(&cfg)
	if cfg.paperWidth != 8.5 || cfg.paperHeight != 11 {
		t.Fatalf("expected letter size, got %vx%v", cfg.paperWidth, cfg.paperHeight)
	}
}
