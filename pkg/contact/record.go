package contact

import "strings"

// Field paths shared by validation, storage and every renderer.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldPosition    = "position"
	FieldDescription = "description"
)

const (
	// Title heads the exported document.
	Title = "User Details"
	// Filename is the attachment name used when the document is downloaded.
	Filename = "user-details.pdf"
)

// FieldOrder lists the record fields in display order.
var FieldOrder = []string{FieldName, FieldEmail, FieldPhone, FieldPosition, FieldDescription}

var labels = map[string]string{
	FieldName:        "Name",
	FieldEmail:       "Email",
	FieldPhone:       "Phone Number",
	FieldPosition:    "Position",
	FieldDescription: "Description",
}

// Record is the flat contact record collected by the form. Position and
// Description are optional; an empty string means the field is absent.
type Record struct {
	Name        string `json:"name" yaml:"name"`
	Email       string `json:"email" yaml:"email"`
	Phone       string `json:"phone" yaml:"phone"`
	Position    string `json:"position,omitempty" yaml:"position,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Entry is a present field paired with its display label.
type Entry struct {
	Field string
	Label string
	Value string
}

// Label returns the display label for a field path.
func Label(field string) string {
	return labels[field]
}

// FromValues builds a record from a field-path map. Unknown keys are ignored.
func FromValues(values map[string]string) Record {
	return Record{
		Name:        values[FieldName],
		Email:       values[FieldEmail],
		Phone:       values[FieldPhone],
		Position:    values[FieldPosition],
		Description: values[FieldDescription],
	}
}

// Values returns the record keyed by field path.
func (r Record) Values() map[string]string {
	return map[string]string{
		FieldName:        r.Name,
		FieldEmail:       r.Email,
		FieldPhone:       r.Phone,
		FieldPosition:    r.Position,
		FieldDescription: r.Description,
	}
}

// Value returns a single field by path.
func (r Record) Value(field string) string {
	return r.Values()[field]
}

// Normalize trims surrounding whitespace from every field. Interior
// whitespace, including description line breaks, is preserved.
func (r Record) Normalize() Record {
	return Record{
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.TrimSpace(r.Email),
		Phone:       strings.TrimSpace(r.Phone),
		Position:    strings.TrimSpace(r.Position),
		Description: strings.TrimSpace(normalizeNewlines(r.Description)),
	}
}

// IsZero reports whether every field is empty.
func (r Record) IsZero() bool {
	return r == Record{}
}

// Entries returns the fields to display in order. Required fields are always
// included; optional fields only when they carry a value.
func (r Record) Entries() []Entry {
	values := r.Values()
	out := make([]Entry, 0, len(FieldOrder))
	for _, field := range FieldOrder {
		value := values[field]
		if isOptional(field) && value == "" {
			continue
		}
		out = append(out, Entry{Field: field, Label: labels[field], Value: value})
	}
	return out
}

func isOptional(field string) bool {
	return field == FieldPosition || field == FieldDescription
}

func normalizeNewlines(s string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
}
