package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/validation"
)

// Name identifies the terminal renderer in the registry.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	styles       Styles
	maxAttempts  int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ ", InfoPrefix: ""},
		styles:       DefaultStyles(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return render.ContentTypeText
	default:
		return "application/json"
	}
}

// Render prompts for every field, prefilled from opts.Record, and returns
// the collected record serialized in the configured format.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	rec, err := r.Collect(ctx, form, opts.Record, opts.Errors)
	if err != nil {
		return nil, err
	}
	return r.serialize(rec)
}

// Collect prompts for each field in form order. Invalid answers are reported
// and the field is asked again with the rejected answer as its default.
func (r *Renderer) Collect(ctx context.Context, form model.FormModel, prefill contact.Record, errs map[string][]string) (contact.Record, error) {
	if ctx == nil {
		return contact.Record{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return contact.Record{}, err
	}
	if r.driver == nil {
		return contact.Record{}, errors.New("tui: prompt driver is nil")
	}

	state := NewState(prefill, errs)
	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, state); err != nil {
			return contact.Record{}, err
		}
	}
	return state.Record().Normalize(), nil
}

// Run is the full terminal flow: collect, preview, then confirm the export.
// Declining the export offers to edit the answers again, like the preview
// screen's back button. The bool reports whether the export was confirmed.
func (r *Renderer) Run(ctx context.Context, form model.FormModel, prefill contact.Record) (contact.Record, bool, error) {
	rec := prefill
	for {
		collected, err := r.Collect(ctx, form, rec, nil)
		if err != nil {
			return rec, false, err
		}
		rec = collected

		if err := r.driver.Info(ctx, Preview(rec, r.styles)); err != nil {
			return rec, false, err
		}
		download, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: downloadLabel(form),
			Default: true,
		})
		if err != nil {
			return rec, false, err
		}
		if download {
			return rec, true, nil
		}

		edit, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Edit your details?",
			Default: true,
		})
		if err != nil {
			return rec, false, err
		}
		if !edit {
			return rec, false, nil
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	label := displayLabel(field)
	help := displayHelp(field)
	check := fieldValidator(field)

	for _, msg := range state.ErrorsFor(field.Name) {
		_ = r.driver.Info(ctx, r.styles.Error.Render(r.theme.ErrorPrefix+msg))
	}

	for attempt := 1; ; attempt++ {
		var (
			response string
			err      error
		)
		if field.Hint("widget") == "textarea" {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: state.Value(field.Name),
				Help:    help,
			})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{
				Message:   label,
				Default:   state.Value(field.Name),
				Help:      help,
				Validator: check,
			})
		}
		if err != nil {
			return err
		}

		state.SetValue(field.Name, response)
		if err := check(response); err != nil {
			_ = r.driver.Info(ctx, r.styles.Error.Render(r.theme.ErrorPrefix+err.Error()))
			if r.maxAttempts > 0 && attempt >= r.maxAttempts {
				return fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
			}
			continue
		}
		return nil
	}
}

// fieldValidator checks a single answer with the same rules the HTTP
// surface applies.
func fieldValidator(field model.Field) func(string) error {
	single := model.FormModel{Fields: []model.Field{field}}
	return func(value string) error {
		result := validation.Validate(single, map[string]string{field.Name: value})
		if result.Valid {
			return nil
		}
		return errors.New(result.Issues[0].Message)
	}
}

func (r *Renderer) serialize(rec contact.Record) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, entry := range rec.Entries() {
			values.Set(entry.Field, entry.Value)
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(Preview(rec, PlainStyles())), nil
	default:
		return json.Marshal(rec)
	}
}

func displayLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if !field.Required {
		label += " (optional)"
	}
	return label
}

func displayHelp(field model.Field) string {
	if field.Placeholder != "" {
		return field.Placeholder
	}
	return field.Description
}

func downloadLabel(form model.FormModel) string {
	if label := form.UIHints["downloadLabel"]; label != "" {
		return label + "?"
	}
	return "Download PDF?"
}
