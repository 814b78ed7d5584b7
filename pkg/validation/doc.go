// Package validation checks submitted values against the rules of a form
// model. Failures are reported as values (Result), never as errors; an error
// is only returned when the form itself cannot be resolved.
package validation
