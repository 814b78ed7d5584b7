package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{{Name: "name"}, {Name: "email"}, {Name: "phone"}}}

	payload := map[string][]string{
		"name":        {"Name is required", " Name is required "},
		"/body/email": {"Please enter a valid email address"},
		"$.phone":     {""},
		"form":        {"error generating PDF"},
		"unknown":     {"Something else"},
	}

	got := render.MapErrorPayload(form, payload)
	want := render.ErrorMapping{
		Fields: map[string][]string{
			"name":  {"Name is required"},
			"email": {"Please enter a valid email address"},
		},
		Form: []string{"error generating PDF", "Something else"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	got := render.MapErrorPayload(model.FormModel{}, nil)
	if got.Fields != nil || got.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", got)
	}
}
