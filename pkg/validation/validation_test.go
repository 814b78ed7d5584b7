package validation_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/validation"
)

func validRecord() contact.Record {
	return contact.Record{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "(220) 222-20002"}
}

func TestValidateRecord(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*contact.Record)
		want   []validation.Issue
	}{
		{
			name:   "valid without optional fields",
			mutate: func(*contact.Record) {},
		},
		{
			name: "valid with optional fields",
			mutate: func(r *contact.Record) {
				r.Position = "Engineer"
				r.Description = "Wrote the first program."
			},
		},
		{
			name:   "empty name",
			mutate: func(r *contact.Record) { r.Name = "" },
			want:   []validation.Issue{{Field: "name", Rule: "required", Message: "Name is required"}},
		},
		{
			name:   "whitespace name",
			mutate: func(r *contact.Record) { r.Name = "   " },
			want:   []validation.Issue{{Field: "name", Rule: "required", Message: "Name is required"}},
		},
		{
			name:   "email without at sign",
			mutate: func(r *contact.Record) { r.Email = "ada.example.com" },
			want:   []validation.Issue{{Field: "email", Rule: "email", Message: "Please enter a valid email address"}},
		},
		{
			name:   "empty email",
			mutate: func(r *contact.Record) { r.Email = "" },
			want:   []validation.Issue{{Field: "email", Rule: "required", Message: "Please enter a valid email address"}},
		},
		{
			name:   "short phone",
			mutate: func(r *contact.Record) { r.Phone = "555-1234" },
			want:   []validation.Issue{{Field: "phone", Rule: "minDigits", Message: "Phone number must be at least 10 digits"}},
		},
		{
			name:   "phone with ten digits and punctuation",
			mutate: func(r *contact.Record) { r.Phone = "+1 (555) 123-456" },
		},
		{
			name:   "phone with letters only counts digits",
			mutate: func(r *contact.Record) { r.Phone = "abcdefghijkl" },
			want:   []validation.Issue{{Field: "phone", Rule: "minDigits", Message: "Phone number must be at least 10 digits"}},
		},
		{
			name: "all required missing keeps field order",
			mutate: func(r *contact.Record) {
				*r = contact.Record{Position: "ignored"}
			},
			want: []validation.Issue{
				{Field: "name", Rule: "required", Message: "Name is required"},
				{Field: "email", Rule: "required", Message: "Please enter a valid email address"},
				{Field: "phone", Rule: "required", Message: "Phone number must be at least 10 digits"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(&rec)

			got, err := validation.ValidateRecord(context.Background(), rec)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if got.Valid != (len(tc.want) == 0) {
				t.Fatalf("valid = %v, issues %+v", got.Valid, got.Issues)
			}
			if diff := cmp.Diff(tc.want, got.Issues); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_EmailShapes(t *testing.T) {
	form := model.MustContactForm()
	cases := map[string]bool{
		"ada@example.com":       true,
		"a.b+tag@sub.domain.io": true,
		"ada@example":           false,
		"ada@@example.com":      false,
		"ada @example.com":      false,
		"@example.com":          false,
		"ada@example.c":         false,
		"ada@.com":              false,
	}
	for email, want := range cases {
		rec := validRecord()
		rec.Email = email
		got := validation.Validate(form, rec.Values())
		if got.Valid != want {
			t.Errorf("email %q: valid = %v, want %v (%+v)", email, got.Valid, want, got.Issues)
		}
	}
}

func TestValidate_GenericRules(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "code", Label: "Code", Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMaxLength, Params: map[string]string{"value": "4"}},
			{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^[A-Z]+$"}},
		}},
		{Name: "nick", Label: "Nick", Required: true, Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired},
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
		}},
	}}

	got := validation.Validate(form, map[string]string{"code": "ab", "nick": "al"})
	want := []validation.Issue{
		{Field: "code", Rule: "pattern", Message: "Code is invalid"},
		{Field: "nick", Rule: "minLength", Message: "Nick must be at least 3 characters"},
	}
	if diff := cmp.Diff(want, got.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	got = validation.Validate(form, map[string]string{"code": "ABCDE", "nick": "alan"})
	if got.Message("code") != "Code must be at most 4 characters" {
		t.Fatalf("unexpected message %q", got.Message("code"))
	}
	if diff := cmp.Diff(map[string][]string{"code": {"Code must be at most 4 characters"}}, got.FieldErrors()); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCountDigits(t *testing.T) {
	if got := validation.CountDigits("(220) 222 -20002"); got != 11 {
		t.Fatalf("expected 11 digits, got %d", got)
	}
	if got := validation.CountDigits("٣٤٥"); got != 0 {
		t.Fatalf("expected non-ASCII digits to be ignored, got %d", got)
	}
}
