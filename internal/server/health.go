package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health returns a plain liveness handler.
func Health(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
