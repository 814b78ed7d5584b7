package validation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/model"
)

// Issue is a single failed rule.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Result captures a validation outcome. Issues follow field order with at
// most one issue per field.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// FieldErrors groups messages by field path for renderers.
func (r Result) FieldErrors() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// Message returns the message reported for field, if any.
func (r Result) Message(field string) string {
	for _, issue := range r.Issues {
		if issue.Field == field {
			return issue.Message
		}
	}
	return ""
}

// emailPattern accepts the common local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)*\.[A-Za-z]{2,}$`)

var patternCache sync.Map

// Validate checks values against every field of form. Values are trimmed
// before checking. Empty optional fields skip their rules entirely, and the
// first failing rule of a field is the only one reported.
func Validate(form model.FormModel, values map[string]string) Result {
	result := Result{Valid: true}
	for _, field := range form.Fields {
		value := strings.TrimSpace(values[field.Name])
		if value == "" && !field.Required {
			continue
		}
		for _, rule := range field.Validations {
			if ok := check(rule, value); ok {
				continue
			}
			result.Valid = false
			result.Issues = append(result.Issues, Issue{
				Field:   field.Name,
				Rule:    rule.Kind,
				Message: message(field, rule),
			})
			break
		}
	}
	return result
}

// ValidateRecord validates a contact record against the embedded contact form.
func ValidateRecord(ctx context.Context, record contact.Record) (Result, error) {
	form, err := model.ContactForm(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("validation: %w", err)
	}
	return Validate(form, record.Values()), nil
}

func check(rule model.ValidationRule, value string) bool {
	switch rule.Kind {
	case model.ValidationRuleRequired:
		return value != ""
	case model.ValidationRuleMinLength:
		return utf8.RuneCountInString(value) >= intParam(rule)
	case model.ValidationRuleMaxLength:
		return utf8.RuneCountInString(value) <= intParam(rule)
	case model.ValidationRuleEmail:
		return emailPattern.MatchString(value)
	case model.ValidationRuleMinDigits:
		return CountDigits(value) >= intParam(rule)
	case model.ValidationRulePattern:
		re, err := compile(rule.Params["pattern"])
		if err != nil {
			return false
		}
		return re.MatchString(value)
	default:
		return true
	}
}

// CountDigits counts the decimal digits in s, ignoring every other rune.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func intParam(rule model.ValidationRule) int {
	n, err := strconv.Atoi(rule.Value())
	if err != nil {
		return 0
	}
	return n
}

func compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, re)
	return re, nil
}

func message(field model.Field, rule model.ValidationRule) string {
	if msg := field.Message(rule.Kind); msg != "" {
		return msg
	}
	label := field.Label
	if label == "" {
		label = field.Name
	}
	switch rule.Kind {
	case model.ValidationRuleRequired:
		return label + " is required"
	case model.ValidationRuleEmail:
		return "Please enter a valid email address"
	case model.ValidationRuleMinDigits:
		return fmt.Sprintf("%s must be at least %s digits", label, rule.Value())
	case model.ValidationRuleMinLength:
		return fmt.Sprintf("%s must be at least %s characters", label, rule.Value())
	case model.ValidationRuleMaxLength:
		return fmt.Sprintf("%s must be at most %s characters", label, rule.Value())
	default:
		return label + " is invalid"
	}
}
