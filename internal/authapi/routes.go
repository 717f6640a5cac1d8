package authapi

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/internal/auth/token"
	"github.com/skillsenselab/authd/internal/server/middleware"
)

// RegisterRoutes mounts the auth endpoints under /api/v1/auth.
// The rate limiter guards only registration and login; the identity lookup
// sits behind the auth guard instead.
func RegisterRoutes(engine *gin.Engine, h *Handler, limiter *middleware.Limiter, tokens *token.Service) {
	authLimit := middleware.RateLimit(limiter, middleware.IPBasedKey)

	group := engine.Group("/api/v1/auth")
	group.POST("/register", authLimit, middleware.ValidateBody(RegisterSchema), h.Register)
	group.POST("/login", authLimit, middleware.ValidateBody(LoginSchema), h.Login)
	group.GET("/me", middleware.Guard(tokens), h.Me)
}
