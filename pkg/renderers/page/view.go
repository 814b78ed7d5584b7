package page

import (
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/render/template/gotemplate"
)

// Routes are the URLs the screens link and post to.
type Routes struct {
	Form     string
	Back     string
	Download string
}

// DefaultRoutes match the paths mounted by the HTTP server.
var DefaultRoutes = Routes{
	Form:     "/",
	Back:     "/preview/back",
	Download: "/preview/download",
}

type fieldView struct {
	Name        string
	ID          string
	Label       string
	Placeholder string
	InputType   string
	Widget      string
	Rows        int
	Icon        string
	Required    bool
	Value       string
	Errors      []string
}

type formView struct {
	Title         string
	Method        string
	Action        string
	SubmitLabel   string
	DownloadLabel string
	Fields        []fieldView
	Errors        []string
}

// rowView carries raw values; templates escape them. Multiline rows also
// carry Lines so templates can join them with <br>.
type rowView struct {
	Field     string
	Label     string
	Value     string
	Lines     []string
	Multiline bool
}

type previewView struct {
	Title         string
	BackAction    string
	BackLabel     string
	DownloadURL   string
	DownloadLabel string
	Filename      string
	Rows          []rowView
}

type themeView struct {
	Name          string
	Variant       string
	Style         string
	StylesheetURL string
}

func buildFormView(form model.FormModel, opts render.RenderOptions, routes Routes) formView {
	mapping := render.MapErrorPayload(form, opts.Errors)
	values := opts.Record.Values()

	view := formView{
		Title:         firstNonEmpty(form.Summary, "Add Your details"),
		Method:        "post",
		Action:        firstNonEmpty(opts.Action, form.Endpoint, routes.Form),
		SubmitLabel:   firstNonEmpty(form.UIHints["submitLabel"], "View PDF"),
		DownloadLabel: firstNonEmpty(form.UIHints["downloadLabel"], "Download PDF"),
		Errors:        mapping.Form,
		Fields:        make([]fieldView, 0, len(form.Fields)),
	}

	for _, field := range form.Fields {
		fv := fieldView{
			Name:        field.Name,
			ID:          "fp-" + field.Name,
			Label:       firstNonEmpty(field.Label, contact.Label(field.Name), field.Name),
			Placeholder: field.Placeholder,
			InputType:   firstNonEmpty(field.Hint("inputType"), "text"),
			Widget:      firstNonEmpty(field.Hint("widget"), "input"),
			Icon:        Icon(field.Hint("icon")),
			Required:    field.Required,
			Value:       values[field.Name],
			Errors:      mapping.Fields[field.Name],
		}
		if fv.Widget == "textarea" {
			fv.Rows = 3
			if rows, err := strconv.Atoi(field.Hint("rows")); err == nil && rows > 0 {
				fv.Rows = rows
			}
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func buildPreviewView(form model.FormModel, rec contact.Record, routes Routes) previewView {
	view := previewView{
		Title:         contact.Title,
		BackAction:    routes.Back,
		BackLabel:     "Back",
		DownloadURL:   routes.Download,
		DownloadLabel: firstNonEmpty(form.UIHints["downloadLabel"], "Download PDF"),
		Filename:      contact.Filename,
	}
	for _, entry := range rec.Normalize().Entries() {
		label := entry.Label
		if field, ok := form.Field(entry.Field); ok && field.Label != "" {
			label = field.Label
		}
		row := rowView{Field: entry.Field, Label: label, Value: entry.Value}
		if entry.Field == contact.FieldDescription {
			row.Multiline = true
			row.Lines = strings.Split(entry.Value, "\n")
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   gotemplate.CSSVars(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.StylesheetURL = cfg.AssetURL("page.stylesheet")
	}
	return view
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			return v
		}
	}
	return ""
}
