package model

import (
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-formpdf/pkg/openapi"
)

// orderKey lists property names, comma separated, in display order.
const orderKey = "order"

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an OpenAPI operation into a FormModel. Only flat request
// bodies are supported; every property becomes one field.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
	}

	opMeta, opHints := ParseUIExtensions(op.Extensions)
	bodyMeta, bodyHints := ParseUIExtensions(op.RequestBody.Extensions)
	form.Metadata = mergeStrings(mergeStrings(nil, opMeta), bodyMeta)
	form.UIHints = mergeStrings(mergeStrings(nil, opHints), bodyHints)

	body := op.RequestBody
	for _, name := range fieldOrder(body, bodyMeta[orderKey]) {
		form.Fields = append(form.Fields, b.field(name, body.Properties[name], body.IsRequired(name)))
	}
	return form, nil
}

func (b *Builder) field(name string, schema pkgopenapi.Schema, required bool) Field {
	metadata, hints := ParseUIExtensions(schema.Extensions)
	field := Field{
		Name:        name,
		Type:        mapType(schema.Type),
		Format:      schema.Format,
		Required:    required,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
		Default:     schema.Default,
		Metadata:    metadata,
		UIHints:     hints,
	}
	if label := strings.TrimSpace(hints["label"]); label != "" {
		field.Label = label
	}
	field.Placeholder = hints["placeholder"]
	field.Validations = validationsFor(schema, required, metadata)
	return field
}

// fieldOrder returns the declared order when present. Otherwise required
// properties come first in schema order, then the rest alphabetically.
// Names in the declared order that the schema lacks are skipped, and
// properties missing from it are appended alphabetically.
func fieldOrder(schema pkgopenapi.Schema, declared string) []string {
	seen := make(map[string]struct{}, len(schema.Properties))
	var out []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if _, ok := schema.Properties[name]; !ok {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	if declared != "" {
		for _, name := range strings.Split(declared, ",") {
			add(name)
		}
	} else {
		for _, name := range schema.Required {
			add(name)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		add(name)
	}
	return out
}

func validationsFor(schema pkgopenapi.Schema, required bool, metadata map[string]string) []ValidationRule {
	var rules []ValidationRule
	if required {
		rules = append(rules, ValidationRule{Kind: ValidationRuleRequired})
	}
	if schema.MinLength != nil && *schema.MinLength > 0 {
		rules = append(rules, valueRule(ValidationRuleMinLength, *schema.MinLength))
	}
	if schema.MaxLength != nil {
		rules = append(rules, valueRule(ValidationRuleMaxLength, *schema.MaxLength))
	}
	if strings.EqualFold(schema.Format, "email") {
		rules = append(rules, ValidationRule{Kind: ValidationRuleEmail})
	}
	if raw := strings.TrimSpace(metadata[ValidationRuleMinDigits]); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			rules = append(rules, valueRule(ValidationRuleMinDigits, n))
		}
	}
	if schema.Pattern != "" {
		rules = append(rules, ValidationRule{
			Kind:   ValidationRulePattern,
			Params: map[string]string{"pattern": schema.Pattern},
		})
	}
	return rules
}

func valueRule(kind string, value int) ValidationRule {
	return ValidationRule{Kind: kind, Params: map[string]string{"value": strconv.Itoa(value)}}
}

func mapType(schemaType string) FieldType {
	switch schemaType {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}
