package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/internal/auth/authctx"
	"github.com/skillsenselab/authd/internal/auth/token"
	apperrors "github.com/skillsenselab/authd/internal/errors"
	"github.com/skillsenselab/authd/internal/server/respond"
)

// Guard returns a Gin middleware that authenticates requests via the
// standard bearer-credential header. On success it stores the resolved
// identity in the request context; it never fetches the user record itself.
func Guard(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := extractBearer(c)
		if err != nil {
			respond.AbortError(c, apperrors.Unauthenticated())
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			respond.AbortError(c, classifyVerifyError(err))
			return
		}

		identity := authctx.Identity{UserID: claims.SubjectID()}
		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), identity))
		c.Set("user_id", identity.UserID)
		c.Next()
	}
}

// extractBearer pulls the token out of the Authorization header.
func extractBearer(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}
	return parts[1], nil
}

// classifyVerifyError maps token verification failures onto the error
// taxonomy: expiry is reported distinctly from forgery.
func classifyVerifyError(err error) *apperrors.AppError {
	if errors.Is(err, token.ErrExpired) {
		return apperrors.TokenExpired()
	}
	return apperrors.InvalidToken()
}
