// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests. Set UPDATE_GOLDENS=1 to rewrite golden files.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpdf/pkg/contact"
)

// ValidRecord returns a record that passes validation with both optional
// fields present.
func ValidRecord() contact.Record {
	return contact.Record{
		Name:        "John Doe",
		Email:       "johndoe@gmail.com",
		Phone:       "(220) 222-20002",
		Position:    "Junior Front end Developer",
		Description: "Built internal dashboards and maintained the design system.",
	}
}

// MinimalRecord returns a valid record without optional fields.
func MinimalRecord() contact.Record {
	return contact.Record{Name: "John Doe", Email: "johndoe@gmail.com", Phone: "2202222000"}
}

// LongDescriptionRecord returns a valid record whose description needs more
// than one page.
func LongDescriptionRecord(paragraphs int) contact.Record {
	rec := ValidRecord()
	para := strings.Repeat("Shipped features across the stack and mentored new hires. ", 6)
	parts := make([]string, paragraphs)
	for i := range parts {
		parts[i] = strings.TrimSpace(para)
	}
	rec.Description = strings.Join(parts, "\n")
	return rec
}

// LoadRecord reads a JSON record fixture.
func LoadRecord(path string) (contact.Record, error) {
	if path == "" {
		return contact.Record{}, errors.New("testsupport: record path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return contact.Record{}, fmt.Errorf("testsupport: read record: %w", err)
	}
	var rec contact.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return contact.Record{}, fmt.Errorf("testsupport: unmarshal record: %w", err)
	}
	return rec, nil
}

// MustLoadRecord is LoadRecord for tests.
func MustLoadRecord(t *testing.T, path string) contact.Record {
	t.Helper()
	rec, err := LoadRecord(path)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	return rec
}

// WriteGolden marshals value as indented JSON into path when UPDATE_GOLDENS
// is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, append(payload, '\n'))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustLoadGolden unmarshals a JSON golden file into out.
func MustLoadGolden(t *testing.T, path string, out any) {
	t.Helper()
	if err := json.Unmarshal(MustReadGolden(t, path), out); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
