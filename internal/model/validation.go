package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-formpdf/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	if err := op.RequestBody.Validate(); err != nil {
		return fmt.Errorf("model builder: invalid request body: %w", err)
	}
	for name, property := range op.RequestBody.Properties {
		if property.Type == "object" || property.Type == "array" {
			return fmt.Errorf("model builder: field %q: nested %s values are not supported", name, property.Type)
		}
	}
	return nil
}
