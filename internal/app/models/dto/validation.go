package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrorsFromBinding converts a gin binding error into field errors,
// collecting every failed field instead of stopping at the first
func FieldErrorsFromBinding(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   jsonFieldName(fe.Field()),
				Message: formatValidationError(fe),
			})
		}
		return fieldErrors
	}

	return []FieldError{{Field: "body", Message: "invalid request format"}}
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := jsonFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}

// jsonFieldName lowercases the struct field name to match the json tags
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
