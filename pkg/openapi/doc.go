// Package openapi exposes the loader and parser contracts used to turn an
// OpenAPI document into form operations. Implementations live under
// internal/openapi so kin-openapi types never leak into callers.
//
// The contact form schema ships embedded; ContactSource and ContactFS give
// loaders access to it without touching the filesystem.
package openapi
