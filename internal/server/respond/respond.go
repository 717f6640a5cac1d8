// Package respond writes the fixed success/error envelope. Every response
// the service emits, success or failure, passes through this package; no
// handler or middleware writes a bare payload to the wire.
package respond

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authd/internal/errors"
	"github.com/skillsenselab/authd/internal/logger"
)

// SuccessResponse is the success envelope.
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// ErrorBody carries the error details inside the error envelope.
type ErrorBody struct {
	Type    apperrors.ErrorType `json:"type"`
	Message string              `json:"message"`
	Code    apperrors.ErrorCode `json:"code"`
	Details any                 `json:"details,omitempty"`
}

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     ErrorBody `json:"error"`
	Timestamp string    `json:"timestamp"`
}

// production controls whether server-side error text is suppressed.
var production bool

// SetProduction toggles production mode. In production, server_error
// responses never expose internal error text.
func SetProduction(enabled bool) { production = enabled }

// OK sends a 200 success envelope.
func OK(c *gin.Context, message string, data any) {
	writeSuccess(c, http.StatusOK, message, data)
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, message string, data any) {
	writeSuccess(c, http.StatusCreated, message, data)
}

// Error classifies err and sends the matching error envelope. Non-AppError
// values map to 500/server_error/INTERNAL_ERROR.
func Error(c *gin.Context, err error) {
	appErr := apperrors.Classify(err)

	body := ErrorBody{
		Type:    appErr.Type,
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}

	if appErr.Type == apperrors.TypeServer {
		if appErr.Cause != nil {
			logger.Error("Request failed", map[string]interface{}{
				"code":  string(appErr.Code),
				"error": appErr.Cause.Error(),
				"path":  c.Request.URL.Path,
			})
		}
		if production {
			body.Message = "An unexpected error occurred"
			body.Details = nil
		} else if appErr.Cause != nil {
			body.Details = map[string]any{"cause": appErr.Cause.Error()}
		}
	}

	c.JSON(appErr.HTTPStatus, ErrorResponse{
		Success:   false,
		Error:     body,
		Timestamp: timestamp(),
	})
}

// AbortError sends the error envelope and aborts the middleware chain.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func writeSuccess(c *gin.Context, status int, message string, data any) {
	c.JSON(status, SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
