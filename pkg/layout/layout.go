// Package layout places a contact record onto A4 pages. It produces pure
// data: every text run with its position in millimetres, measured from the
// top-left corner of the page. Writers convert to their own units.
package layout

import (
	"github.com/goliatone/go-formpdf/pkg/contact"
)

// Page geometry and typography, in millimetres and points.
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	MarginLeft   = 20.0
	MarginTop    = 20.0
	MarginBottom = 20.0

	TitleY    = 30.0
	TitleSize = 20.0

	BodySize  = 12.0
	FirstRowY = 60.0
	RowStep   = 20.0
	ValueX    = 60.0

	// DescriptionOffset separates the Description label from its first line.
	DescriptionOffset = 15.0
	LineHeightFactor  = 1.15

	WrapColumns = 60

	PointsPerMM = 72 / 25.4
)

// LineHeight is the distance between wrapped description lines in mm.
const LineHeight = BodySize * LineHeightFactor / PointsPerMM

// TextOp is a single run of text with its baseline position.
type TextOp struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
	Bold bool    `json:"bold,omitempty"`
}

// Page holds the runs drawn on one page in drawing order.
type Page struct {
	Ops []TextOp `json:"ops"`
}

// Document is a laid-out record.
type Document struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`
	Pages      []Page  `json:"pages"`
}

// Options tunes the layout.
type Options struct {
	Title       string
	WrapColumns int
}

// Option mutates Options.
type Option func(*Options)

// WithWrapColumns overrides the description wrap width. Values below one
// fall back to WrapColumns.
func WithWrapColumns(columns int) Option {
	return func(o *Options) {
		o.WrapColumns = columns
	}
}

// WithTitle overrides the document heading.
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// Build lays rec out. The title sits at the top of the first page; each
// present field follows as a bold label and a regular value, one row every
// RowStep. The description is written below its label, wrapped, and spills
// onto further pages when it passes the bottom margin.
func Build(rec contact.Record, options ...Option) Document {
	opts := Options{Title: contact.Title, WrapColumns: WrapColumns}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	if opts.WrapColumns < 1 {
		opts.WrapColumns = WrapColumns
	}

	w := &writer{doc: Document{PageWidth: PageWidth, PageHeight: PageHeight}}
	w.newPage()
	w.add(TextOp{Text: opts.Title, X: MarginLeft, Y: TitleY, Size: TitleSize})

	y := FirstRowY
	for _, entry := range rec.Entries() {
		y = w.reserve(y)
		w.add(TextOp{Text: entry.Label + ":", X: MarginLeft, Y: y, Size: BodySize, Bold: true})

		if entry.Field != contact.FieldDescription {
			w.add(TextOp{Text: entry.Value, X: ValueX, Y: y, Size: BodySize})
			y += RowStep
			continue
		}

		lineY := y + DescriptionOffset
		for _, line := range Wrap(entry.Value, opts.WrapColumns) {
			lineY = w.reserve(lineY)
			w.add(TextOp{Text: line, X: MarginLeft, Y: lineY, Size: BodySize})
			lineY += LineHeight
		}
		y = lineY - LineHeight + RowStep
	}
	return w.doc
}

type writer struct {
	doc Document
}

func (w *writer) newPage() {
	w.doc.Pages = append(w.doc.Pages, Page{})
}

func (w *writer) add(op TextOp) {
	last := &w.doc.Pages[len(w.doc.Pages)-1]
	last.Ops = append(last.Ops, op)
}

// reserve returns the baseline to draw at, starting a new page when y is
// past the bottom margin.
func (w *writer) reserve(y float64) float64 {
	if y <= PageHeight-MarginBottom {
		return y
	}
	w.newPage()
	return MarginTop
}

// Lines returns the text of every page in drawing order, one entry per run
// with bold labels joined to the value that shares their baseline.
func (d Document) Lines() [][]string {
	out := make([][]string, 0, len(d.Pages))
	for _, page := range d.Pages {
		var lines []string
		for i := 0; i < len(page.Ops); i++ {
			op := page.Ops[i]
			text := op.Text
			if op.Bold && i+1 < len(page.Ops) && !page.Ops[i+1].Bold && page.Ops[i+1].Y == op.Y {
				text += " " + page.Ops[i+1].Text
				i++
			}
			lines = append(lines, text)
		}
		out = append(out, lines)
	}
	return out
}
