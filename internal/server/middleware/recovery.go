package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authd/internal/errors"
	"github.com/skillsenselab/authd/internal/logger"
	"github.com/skillsenselab/authd/internal/server/respond"
)

// Recovery returns a Gin middleware that recovers from panics, logs the
// stack, and maps the failure to the 500 error envelope. This is the single
// outermost boundary for truly unexpected failures.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", err),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				respond.AbortError(c, apperrors.Internal(fmt.Errorf("panic: %v", err)))
			}
		}()
		c.Next()
	}
}
