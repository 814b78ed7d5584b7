package tui

import "github.com/goliatone/go-formpdf/pkg/contact"

// State tracks answers and feedback keyed by field path while a flow runs.
type State struct {
	values map[string]string
	errors map[string][]string
}

// NewState seeds the state with a prefilled record and errors, typically
// the answers and validation feedback of a previous attempt.
func NewState(prefill contact.Record, errs map[string][]string) *State {
	return &State{
		values: prefill.Values(),
		errors: cloneErrors(errs),
	}
}

// Value returns the current answer for a field.
func (s *State) Value(field string) string {
	if s == nil {
		return ""
	}
	return s.values[field]
}

// SetValue records an answer and clears its feedback.
func (s *State) SetValue(field, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[field] = value
	delete(s.errors, field)
}

// ErrorsFor returns the feedback attached to a field.
func (s *State) ErrorsFor(field string) []string {
	if s == nil || len(s.errors) == 0 {
		return nil
	}
	return s.errors[field]
}

// Record returns the answers as a contact record.
func (s *State) Record() contact.Record {
	if s == nil {
		return contact.Record{}
	}
	return contact.FromValues(s.values)
}

func cloneErrors(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
