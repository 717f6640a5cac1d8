package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authd/internal/errors"
	"github.com/skillsenselab/authd/internal/server/respond"
	"github.com/skillsenselab/authd/internal/validation"
)

// Context keys for validated request data.
const (
	validatedBodyKey   = "validated_body"
	validatedQueryKey  = "validated_query"
	validatedParamsKey = "validated_params"
)

// ValidateBody returns middleware that validates the JSON request body
// against schema. On failure it responds 400 with the ordered field error
// list and stops the chain; no store or hashing work happens afterwards.
// On success the normalized map is stored for the handler.
func ValidateBody(schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var raw map[string]any
		if err := c.ShouldBindJSON(&raw); err != nil {
			respond.AbortError(c, apperrors.Validation([]validation.FieldError{{
				Field:   "body",
				Message: "must be a valid JSON object",
				Code:    validation.CodeType,
			}}))
			return
		}

		normalized, fieldErrs := schema.Validate(raw)
		if fieldErrs != nil {
			respond.AbortError(c, apperrors.Validation(fieldErrs))
			return
		}

		c.Set(validatedBodyKey, normalized)
		c.Next()
	}
}

// ValidateQuery returns middleware that validates URL query parameters
// against schema.
func ValidateQuery(schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := make(map[string]any)
		for key, values := range c.Request.URL.Query() {
			if len(values) > 0 {
				raw[key] = values[0]
			}
		}

		normalized, fieldErrs := schema.Validate(raw)
		if fieldErrs != nil {
			respond.AbortError(c, apperrors.Validation(fieldErrs))
			return
		}

		c.Set(validatedQueryKey, normalized)
		c.Next()
	}
}

// ValidateParams returns middleware that validates route parameters
// against schema.
func ValidateParams(schema validation.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := make(map[string]any, len(c.Params))
		for _, p := range c.Params {
			raw[p.Key] = p.Value
		}

		normalized, fieldErrs := schema.Validate(raw)
		if fieldErrs != nil {
			respond.AbortError(c, apperrors.Validation(fieldErrs))
			return
		}

		c.Set(validatedParamsKey, normalized)
		c.Next()
	}
}

// ValidatedBody returns the normalized body map stored by ValidateBody.
func ValidatedBody(c *gin.Context) map[string]any {
	if v, ok := c.Get(validatedBodyKey); ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// ValidatedQuery returns the normalized query map stored by ValidateQuery.
func ValidatedQuery(c *gin.Context) map[string]any {
	if v, ok := c.Get(validatedQueryKey); ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// ValidatedParams returns the normalized params map stored by ValidateParams.
func ValidatedParams(c *gin.Context) map[string]any {
	if v, ok := c.Get(validatedParamsKey); ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}
