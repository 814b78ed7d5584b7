package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		columns int
		want    []string
	}{
		{name: "short", text: "hello world", columns: 20, want: []string{"hello world"}},
		{name: "breaks on spaces", text: "aaa bbb ccc", columns: 7, want: []string{"aaa bbb", "ccc"}},
		{name: "exact width", text: "abcde fghij", columns: 5, want: []string{"abcde", "fghij"}},
		{name: "keeps newlines", text: "one\ntwo", columns: 20, want: []string{"one", "two"}},
		{name: "keeps blank lines", text: "one\n\ntwo", columns: 20, want: []string{"one", "", "two"}},
		{name: "crlf", text: "one\r\ntwo", columns: 20, want: []string{"one", "two"}},
		{name: "hard breaks long words", text: "abcdefghij xy", columns: 4, want: []string{"abcd", "efgh", "ij", "xy"}},
		{name: "long word after text", text: "hi abcdefgh", columns: 4, want: []string{"hi", "abcd", "efgh"}},
		{name: "collapses spaces", text: "a   b", columns: 10, want: []string{"a b"}},
		{name: "runes not bytes", text: "ééé ééé", columns: 3, want: []string{"ééé", "ééé"}},
		{name: "blank", text: "  \n ", columns: 10, want: nil},
		{name: "default columns", text: "x", columns: 0, want: []string{"x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Wrap(tc.text, tc.columns)); diff != "" {
				t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
