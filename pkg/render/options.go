package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formpdf/pkg/contact"
)

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Record prefills the form, or is the subject of a preview or export.
	Record contact.Record
	// Errors surfaces validation feedback keyed by field path. Keys that do
	// not match a field are shown as form-level errors.
	Errors map[string][]string
	// Theme carries resolved tokens and asset URLs for HTML renderers.
	Theme *theme.RendererConfig
	// Action overrides the form's submit endpoint.
	Action string
}

// HasErrors reports whether any feedback is attached.
func (o RenderOptions) HasErrors() bool {
	return len(o.Errors) > 0
}
