package tui

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formpdf/pkg/testsupport"
)

func TestPreview_ListsPresentFields(t *testing.T) {
	out := Preview(testsupport.MinimalRecord(), PlainStyles())

	for _, want := range []string{"User Details", "Name:", "Email:", "Phone Number:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected preview to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Position:") || strings.Contains(out, "Description:") {
		t.Fatalf("expected empty optional fields omitted:\n%s", out)
	}
}

func TestPreview_WrapsDescription(t *testing.T) {
	rec := testsupport.LongDescriptionRecord(2)
	out := Preview(rec, PlainStyles())

	lines := strings.Split(out, "\n")
	idx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Description:") {
			idx = i
			break
		}
	}
	if idx < 0 || idx+2 >= len(lines) {
		t.Fatalf("expected wrapped description lines:\n%s", out)
	}
	for _, line := range lines[idx+1:] {
		if n := len([]rune(strings.TrimRight(line, " "))); n > 60 {
			t.Fatalf("description line exceeds wrap width (%d): %q", n, line)
		}
	}
}
