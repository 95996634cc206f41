// Package forms defines the typed inputs behind the catalog's HTML forms.
//
// Every mutating operation has its own input struct holding the raw form
// values. Validate returns the field errors in form order so templates can
// render them inline next to the values the user already typed.
package forms

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the ISO-8601 date format accepted by every date input.
const DateLayout = "2006-01-02"

// FieldError is one violated rule on one form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects field errors in the order the fields appear on the form.
type Errors []FieldError

// Has reports whether the field has an error.
func (e Errors) Has(field string) bool {
	return e.For(field) != ""
}

// For returns the message for a field, or "" when the field is valid.
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// appendErr records a validation result against a field. Nil results are
// dropped so callers can chain rule checks unconditionally.
func appendErr(errs Errors, field string, err error) Errors {
	if err == nil {
		return errs
	}
	return append(errs, FieldError{Field: field, Message: err.Error()})
}

// parseDate parses an optional ISO-8601 date. Empty input means the date
// was never recorded; invalid input is rejected by Validate beforehand, so
// a parse failure here also maps to nil.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// dateRule builds the shared optional-date rule. Ozzo skips empty values,
// so Required is the only rule that rejects a blank field.
func dateRule(message string) validation.Rule {
	return validation.Date(DateLayout).Error(message)
}

// DateValue renders a stored optional date back into the value attribute
// of a date input. Nil dates render as the empty string.
func DateValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
