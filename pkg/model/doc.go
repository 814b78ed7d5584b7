// Package model defines the typed form model consumed by validators and
// renderers. Builders live in internal/model but return the types re-exported
// here.
//
// Validation rules use canonical kinds (required, minLength, maxLength,
// pattern, email, minDigits) with string parameters so snapshots stay stable.
// Keys of the `x-formpdf` extension land in Field.Metadata; keys of the form
// `message.<kind>` override the message reported for that rule, and the
// curated UIHints subset (label, placeholder, inputType, widget, rows, icon)
// drives the HTML screens.
package model
