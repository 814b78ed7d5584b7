package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formpdf/internal/openapi/loader"
	"github.com/goliatone/go-formpdf/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formpdf/pkg/openapi"
)

var (
	contactOnce sync.Once
	contactForm FormModel
	contactErr  error
)

// ContactForm returns the form model built from the embedded contact schema.
// The schema is parsed once per process; callers receive a shared value and
// must not mutate its maps or slices.
func ContactForm(ctx context.Context) (FormModel, error) {
	contactOnce.Do(func() {
		contactForm, contactErr = BuildForm(ctx, pkgopenapi.ContactSource(), pkgopenapi.ContactOperationID)
	})
	return contactForm, contactErr
}

// MustContactForm panics when the embedded schema cannot be built.
func MustContactForm() FormModel {
	form, err := ContactForm(context.Background())
	if err != nil {
		panic(err)
	}
	return form
}

// BuildForm loads src, parses it and builds the model for operationID.
// URL sources are fetched with the default HTTP client.
func BuildForm(ctx context.Context, src pkgopenapi.Source, operationID string, options ...pkgopenapi.LoaderOption) (FormModel, error) {
	opts := []pkgopenapi.LoaderOption{pkgopenapi.WithHTTPFallback(0)}
	doc, err := loader.New(pkgopenapi.NewLoaderOptions(append(opts, options...)...)).Load(ctx, src)
	if err != nil {
		return FormModel{}, err
	}
	ops, err := parser.New(pkgopenapi.NewParserOptions()).Operations(ctx, doc)
	if err != nil {
		return FormModel{}, err
	}
	op, ok := ops[operationID]
	if !ok {
		return FormModel{}, fmt.Errorf("model: operation %q not found in %s", operationID, doc.Location())
	}
	return NewBuilder().Build(op)
}
