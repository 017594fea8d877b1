package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/aspen/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an INVALID_ARGUMENT AppError if there are validation
// errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s %s", e.Field, e.Message)
	}

	appErr := errors.Validation("Invalid argument " + strings.Join(messages, "; "))
	if len(v.errors) == 1 {
		appErr.WithDetail(errors.DetailField, v.errors[0].Field)
	}
	return appErr.WithDetail("fields", v.errors)
}

// Err is Validate as a plain error, so callers never see a typed nil.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Required checks if a string is non-empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if isBlank(value) {
		v.AddError(field, "is required")
	}
	return v
}

// RequireNonEmpty fails with an INVALID_ARGUMENT error naming field when
// value is empty or whitespace-only. It has no other effect.
func RequireNonEmpty(field, value string) error {
	if isBlank(value) {
		return errors.InvalidArgument(field, "must not be empty")
	}
	return nil
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
