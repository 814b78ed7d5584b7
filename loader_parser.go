package formpdf

import (
	internalLoader "github.com/goliatone/go-formpdf/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formpdf/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formpdf/pkg/openapi"
)

// NewLoader constructs a schema loader while keeping the concrete type
// hidden from consumers. fs sources resolve against the embedded schemas
// unless WithFileSystem says otherwise.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a schema parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
