package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
// validator.Validate is safe for concurrent use.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// checkFormat applies a single validator/v10 tag to a value.
func checkFormat(value, tag string) error {
	return getValidator().Var(value, tag)
}

// formatMessage creates a human-readable message for a format failure.
func formatMessage(tag string) string {
	switch tag {
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	default:
		return "has an invalid format"
	}
}

// ValidateStruct validates a struct using validator/v10 struct tags.
// Used for configuration and internal structs, not request input.
func ValidateStruct(s any) error {
	return getValidator().Struct(s)
}
