package handlers

import (
	"errors"
	"strings"

	"github.com/getmentor/inquiry-api/internal/models"
	"github.com/go-playground/validator/v10"
)

// ParseValidationErrors converts binding errors to the same shape the form reports
func ParseValidationErrors(err error) []models.FieldError {
	var out []models.FieldError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			out = append(out, models.FieldError{
				Field:   strings.ToLower(fieldError.Field()),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return out
}

func getErrorMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must not exceed " + fe.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " is invalid"
	}
}
