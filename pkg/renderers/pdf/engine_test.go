package pdf

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	seehuhn "seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/layout"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/testsupport"
)

func TestEngineRender_ProducesPDF(t *testing.T) {
	out, err := New().Render(context.Background(), testsupport.ValidRecord())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-1.7")) {
		t.Fatalf("expected PDF header, got %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out[max(0, len(out)-64):], []byte("%%EOF")) {
		t.Fatalf("expected PDF trailer")
	}
}

func TestEngineWrite_MatchesRender(t *testing.T) {
	engine := New()
	rec := testsupport.MinimalRecord()

	rendered, err := engine.Render(context.Background(), rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var buf bytes.Buffer
	if err := engine.Write(context.Background(), &buf, rec); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.Equal(rendered, buf.Bytes()) {
		t.Fatalf("expected identical output from Render and Write")
	}
}

func TestEngineRender_LongDescriptionGrows(t *testing.T) {
	engine := New()
	short, err := engine.Render(context.Background(), testsupport.ValidRecord())
	if err != nil {
		t.Fatalf("render short: %v", err)
	}
	long, err := engine.Render(context.Background(), testsupport.LongDescriptionRecord(12))
	if err != nil {
		t.Fatalf("render long: %v", err)
	}
	if len(long) <= len(short) {
		t.Fatalf("expected multi-page output to be larger (%d <= %d)", len(long), len(short))
	}
}

func TestEngineRender_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Render(ctx, testsupport.ValidRecord()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestToPoints(t *testing.T) {
	doc := layout.Document{PageWidth: layout.PageWidth, PageHeight: layout.PageHeight}
	x, y := toPoints(doc, 20, 30)
	if math.Abs(x-56.693) > 0.01 || math.Abs(y-756.85) > 0.01 {
		t.Fatalf("unexpected conversion (%v, %v)", x, y)
	}
}

func TestRenderer_UsesRecordFromOptions(t *testing.T) {
	r := NewRenderer(WithWrapColumns(40))
	if r.Name() != "pdf" || r.ContentType() != render.ContentTypePDF {
		t.Fatalf("unexpected identity %s %s", r.Name(), r.ContentType())
	}
	out, err := r.Render(context.Background(), model.FormModel{}, render.RenderOptions{Record: testsupport.MinimalRecord()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("expected PDF output")
	}
}

// textRun is one BT/ET block read back from a rendered page, positioned in
// PDF user space.
type textRun struct {
	Text string
	X, Y float64
}

func readRuns(t *testing.T, data []byte) [][]textRun {
	t.Helper()

	r, err := seehuhn.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	numPages, err := pagetree.NumPages(r)
	if err != nil {
		t.Fatalf("count pages: %v", err)
	}

	pages := make([][]textRun, 0, numPages)
	for i := 0; i < numPages; i++ {
		_, pageDict, err := pagetree.GetPage(r, i)
		if err != nil {
			t.Fatalf("page %d: %v", i+1, err)
		}

		var runs []textRun
		fresh := false
		contents := reader.New(r, nil)
		contents.EveryOp = func(op string, _ []seehuhn.Object) error {
			if op == "BT" {
				fresh = true
			}
			return nil
		}
		contents.Text = func(text string) error {
			if fresh {
				x, y := contents.GetTextPositionDevice()
				runs = append(runs, textRun{X: x, Y: y})
				fresh = false
			}
			runs[len(runs)-1].Text += text
			return nil
		}
		if err := contents.ParsePage(pageDict, matrix.Identity); err != nil {
			t.Fatalf("parse page %d: %v", i+1, err)
		}
		pages = append(pages, runs)
	}
	return pages
}

func TestEngineRender_DrawsLabelAndValueRuns(t *testing.T) {
	rec := testsupport.MinimalRecord()
	out, err := New().Render(context.Background(), rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	pages := readRuns(t, out)
	if len(pages) != 1 {
		t.Fatalf("expected one page, got %d", len(pages))
	}

	var texts []string
	for _, run := range pages[0] {
		texts = append(texts, run.Text)
	}
	want := []string{
		contact.Title,
		"Name:", rec.Name,
		"Email:", rec.Email,
		"Phone Number:", rec.Phone,
	}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Fatalf("text runs mismatch (-want +got):\n%s", diff)
	}

	// Layout measures y from the top edge; PDF user space from the bottom.
	name := pages[0][1]
	wantX := layout.MarginLeft * layout.PointsPerMM
	wantY := (layout.PageHeight - layout.FirstRowY) * layout.PointsPerMM
	if math.Abs(name.X-wantX) > 0.01 || math.Abs(name.Y-wantY) > 0.01 {
		t.Fatalf("Name: drawn at (%.2f, %.2f), want (%.2f, %.2f)", name.X, name.Y, wantX, wantY)
	}
	value := pages[0][2]
	if math.Abs(value.X-layout.ValueX*layout.PointsPerMM) > 0.01 || math.Abs(value.Y-wantY) > 0.01 {
		t.Fatalf("name value drawn at (%.2f, %.2f)", value.X, value.Y)
	}
}

func TestEngineRender_MultiPageDescriptionReadsBack(t *testing.T) {
	rec := testsupport.LongDescriptionRecord(12)
	doc := layout.Build(rec)
	if len(doc.Pages) < 2 {
		t.Fatalf("fixture should overflow, got %d page(s)", len(doc.Pages))
	}

	out, err := New().Render(context.Background(), rec)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	pages := readRuns(t, out)
	if len(pages) != len(doc.Pages) {
		t.Fatalf("expected %d pages, got %d", len(doc.Pages), len(pages))
	}

	for i, page := range doc.Pages {
		var want, got []string
		for _, op := range page.Ops {
			if op.Text != "" {
				want = append(want, op.Text)
			}
		}
		for _, run := range pages[i] {
			got = append(got, run.Text)
			if run.Y < layout.MarginBottom*layout.PointsPerMM {
				t.Fatalf("page %d: %q drawn below the bottom margin (y=%.2f)", i+1, run.Text, run.Y)
			}
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("page %d runs mismatch (-want +got):\n%s", i+1, diff)
		}
	}

	// Continuation pages start at the top margin.
	first := pages[1][0]
	wantY := (layout.PageHeight - layout.MarginTop) * layout.PointsPerMM
	if math.Abs(first.Y-wantY) > 0.01 {
		t.Fatalf("continuation starts at y=%.2f, want %.2f", first.Y, wantY)
	}
}
