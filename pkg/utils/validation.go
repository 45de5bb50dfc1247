package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// ISO-8601 covers both plain dates and full timestamps
	v.RegisterValidation("iso8601", isISO8601)
	return v
}

var iso8601Layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

func isISO8601(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, layout := range iso8601Layouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// ValidateStruct validates a struct based on its validation tags. Only the
// first failing field, in declaration order, is reported.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError formats the first validation failure into a
// readable message
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		return fmt.Errorf("%s", formatFieldError(validationErrors[0]))
	}
	return err
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := lowerFirst(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "iso8601":
		return fmt.Sprintf("Invalid %s format. Use ISO8601 format.", field)
	case "url":
		return fmt.Sprintf("Invalid %s. Should be a URL", field)
	case "gte":
		return fmt.Sprintf("%s should be a positive integer", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
