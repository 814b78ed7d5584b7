package contact

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordEntries_OmitsEmptyOptionalFields(t *testing.T) {
	rec := Record{Name: "Ada", Email: "ada@example.com", Phone: "5551234567"}

	got := rec.Entries()
	want := []Entry{
		{Field: FieldName, Label: "Name", Value: "Ada"},
		{Field: FieldEmail, Label: "Email", Value: "ada@example.com"},
		{Field: FieldPhone, Label: "Phone Number", Value: "5551234567"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordEntries_IncludesOptionalFieldsInOrder(t *testing.T) {
	rec := Record{
		Name:        "Ada",
		Email:       "ada@example.com",
		Phone:       "5551234567",
		Position:    "Engineer",
		Description: "Analytical engines",
	}

	got := rec.Entries()
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	if got[3].Label != "Position" || got[4].Label != "Description" {
		t.Fatalf("unexpected optional order: %+v", got[3:])
	}
}

func TestRecordEntries_KeepsEmptyRequiredFields(t *testing.T) {
	got := Record{}.Entries()
	if len(got) != 3 {
		t.Fatalf("expected required fields to be listed, got %d entries", len(got))
	}
}

func TestRecordNormalize(t *testing.T) {
	rec := Record{
		Name:        "  Ada  ",
		Email:       " ada@example.com",
		Description: "line one\r\nline two\r\n",
	}
	got := rec.Normalize()
	if got.Name != "Ada" || got.Email != "ada@example.com" {
		t.Fatalf("expected trimmed fields, got %+v", got)
	}
	if got.Description != "line one\nline two" {
		t.Fatalf("expected normalised newlines, got %q", got.Description)
	}
}

func TestFromValuesRoundTrip(t *testing.T) {
	rec := Record{Name: "Ada", Email: "a@b.io", Phone: "1234567890", Position: "CTO"}
	if diff := cmp.Diff(rec, FromValues(rec.Values())); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
