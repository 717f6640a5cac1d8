// Package validation implements declarative request validation. A Schema is
// a data-driven table of field rules evaluated by a generic routine; the
// result is either a normalized value map or an ordered list of field errors.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType enumerates the primitive types a schema field may declare.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeBool   FieldType = "bool"
)

// Error codes attached to field errors.
const (
	CodeRequired     = "required"
	CodeType         = "type"
	CodeMin          = "min"
	CodeMax          = "max"
	CodeFormat       = "format"
	CodeOneOf        = "oneof"
	CodeUnknownField = "unknown_field"
)

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Field declares the rules for one schema field.
type Field struct {
	// Name is the key in the raw input.
	Name string
	// Type is the expected primitive type.
	Type FieldType
	// Required rejects absent or empty values.
	Required bool
	// MinLen/MaxLen bound string length in bytes. Zero means unbounded.
	MinLen int
	MaxLen int
	// Format is a validator/v10 tag applied to string values (e.g. "email").
	Format string
	// OneOf restricts string values to the given set.
	OneOf []string
	// Trim strips surrounding whitespace before further checks.
	Trim bool
	// Lower folds the value to lower case before further checks.
	Lower bool
}

// Schema is an ordered set of field rules.
type Schema struct {
	Fields []Field
	// Strict rejects input keys that are not declared. Non-strict schemas
	// silently drop unknown keys.
	Strict bool
}

// Validate checks raw input against the schema. It returns the normalized
// value map on success, or the ordered error list on failure. Every field is
// validated independently; validation never stops at the first failure.
// Validate is a pure function and safe for concurrent use.
func (s Schema) Validate(raw map[string]any) (map[string]any, []FieldError) {
	normalized := make(map[string]any, len(s.Fields))
	var errs []FieldError

	for _, f := range s.Fields {
		value, present := raw[f.Name]
		if !present || value == nil {
			if f.Required {
				errs = append(errs, FieldError{
					Field: f.Name, Message: "is required", Code: CodeRequired,
				})
			}
			continue
		}

		out, fieldErrs := f.check(value)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		normalized[f.Name] = out
	}

	if s.Strict {
		errs = append(errs, s.unknownFieldErrors(raw)...)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return normalized, nil
}

// check validates a single present value against the field rules and returns
// the normalized value. Type mismatch short-circuits the remaining rules for
// this field only; other constraint failures accumulate.
func (f Field) check(value any) (any, []FieldError) {
	switch f.Type {
	case TypeNumber:
		switch n := value.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		default:
			return nil, []FieldError{f.typeError()}
		}
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, []FieldError{f.typeError()}
		}
		return b, nil
	default:
		str, ok := value.(string)
		if !ok {
			return nil, []FieldError{f.typeError()}
		}
		return f.checkString(str)
	}
}

func (f Field) checkString(str string) (any, []FieldError) {
	if f.Trim {
		str = strings.TrimSpace(str)
	}
	if f.Lower {
		str = strings.ToLower(str)
	}

	var errs []FieldError
	if f.Required && str == "" {
		return nil, []FieldError{{Field: f.Name, Message: "is required", Code: CodeRequired}}
	}
	if f.MinLen > 0 && len(str) < f.MinLen {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("must be at least %d characters", f.MinLen),
			Code:    CodeMin,
		})
	}
	if f.MaxLen > 0 && len(str) > f.MaxLen {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("must be at most %d characters", f.MaxLen),
			Code:    CodeMax,
		})
	}
	if f.Format != "" && str != "" {
		if err := checkFormat(str, f.Format); err != nil {
			errs = append(errs, FieldError{
				Field:   f.Name,
				Message: formatMessage(f.Format),
				Code:    CodeFormat,
			})
		}
	}
	if len(f.OneOf) > 0 && !containsString(f.OneOf, str) {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: "must be one of: " + strings.Join(f.OneOf, ", "),
			Code:    CodeOneOf,
		})
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return str, nil
}

func (f Field) typeError() FieldError {
	return FieldError{
		Field:   f.Name,
		Message: fmt.Sprintf("must be a %s", f.Type),
		Code:    CodeType,
	}
}

// unknownFieldErrors reports undeclared input keys, sorted by key for
// deterministic output.
func (s Schema) unknownFieldErrors(raw map[string]any) []FieldError {
	declared := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		declared[f.Name] = true
	}

	var unknown []string
	for key := range raw {
		if !declared[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	errs := make([]FieldError, 0, len(unknown))
	for _, key := range unknown {
		errs = append(errs, FieldError{
			Field: key, Message: "is not an allowed field", Code: CodeUnknownField,
		})
	}
	return errs
}

func containsString(slice []string, val string) bool {
	for _, s := range slice {
		if s == val {
			return true
		}
	}
	return false
}
