package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formpdf/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload matches payload keys to the form's fields. Keys may be bare
// field names or pointer-style paths such as "/body/email"; anything that does
// not resolve to a field is kept as a form-level message so nothing is lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
	}

	// Walk keys in field order first so the form-level list is stable.
	for _, field := range form.Fields {
		for key, messages := range payload {
			if resolveField(key, known) != field.Name {
				continue
			}
			if msgs := normalizeMessages(messages); len(msgs) > 0 {
				if mapping.Fields == nil {
					mapping.Fields = make(map[string][]string)
				}
				mapping.Fields[field.Name] = append(mapping.Fields[field.Name], msgs...)
			}
		}
	}
	for _, key := range sortedKeys(payload) {
		if resolveField(key, known) == "" {
			mapping.Form = append(mapping.Form, payload[key]...)
		}
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func resolveField(key string, known map[string]struct{}) string {
	clean := strings.TrimSpace(key)
	clean = strings.TrimLeft(clean, "#$/.")
	segments := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' || r == '/' })
	for i := len(segments) - 1; i >= 0; i-- {
		if _, ok := known[segments[i]]; ok {
			return segments[i]
		}
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
