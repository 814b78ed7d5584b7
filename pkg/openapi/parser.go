package openapi

import "context"

// Parser normalises OpenAPI documents into operation wrappers.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// ParserOptions configures parsing.
type ParserOptions struct {
	// AllowExternalRefs lets the document reference other files or URLs.
	// Embedded schemas never need it.
	AllowExternalRefs bool

	// ContentTypes lists the request media types inspected, in order. The
	// first one present on an operation supplies its request schema.
	ContentTypes []string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithExternalRefs toggles external $ref resolution.
func WithExternalRefs(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// WithContentTypes overrides the inspected request media types.
func WithContentTypes(types ...string) ParserOption {
	return func(opts *ParserOptions) {
		if len(types) > 0 {
			opts.ContentTypes = append([]string(nil), types...)
		}
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ContentTypes: []string{"application/x-www-form-urlencoded", "application/json", "multipart/form-data"},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
