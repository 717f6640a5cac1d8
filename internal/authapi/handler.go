// Package authapi implements the authentication request pipeline:
// registration, login, and current-identity lookup.
package authapi

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/internal/auth/authctx"
	"github.com/skillsenselab/authd/internal/auth/password"
	"github.com/skillsenselab/authd/internal/auth/token"
	apperrors "github.com/skillsenselab/authd/internal/errors"
	"github.com/skillsenselab/authd/internal/logger"
	"github.com/skillsenselab/authd/internal/server/middleware"
	"github.com/skillsenselab/authd/internal/server/respond"
	"github.com/skillsenselab/authd/internal/store"
)

// Handler orchestrates the auth pipeline over its collaborators.
type Handler struct {
	users  *store.UserStore
	hasher password.Hasher
	tokens *token.Service
	log    *logger.Logger
}

// NewHandler creates the auth handler.
func NewHandler(users *store.UserStore, hasher password.Hasher, tokens *token.Service, log *logger.Logger) *Handler {
	return &Handler{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("authapi"),
	}
}

// authResponse is the data payload for register and login.
type authResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// identityResponse is the data payload for the current-identity lookup.
type identityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles POST /api/v1/auth/register. The validation middleware has
// already normalized the body; the unique email index decides duplicates.
func (h *Handler) Register(c *gin.Context) {
	body := middleware.ValidatedBody(c)
	name, _ := body["name"].(string)
	email, _ := body["email"].(string)
	plaintext, _ := body["password"].(string)

	ctx := c.Request.Context()

	hash, err := h.hasher.Hash(ctx, plaintext)
	if err != nil {
		respond.Error(c, apperrors.UserCreationFailed(err))
		return
	}

	user, err := h.users.Create(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respond.Error(c, apperrors.UserExists())
			return
		}
		respond.Error(c, apperrors.UserCreationFailed(err))
		return
	}

	signed, err := h.tokens.Issue(user.ID)
	if err != nil {
		respond.Error(c, apperrors.Internal(err))
		return
	}

	h.log.Info("User registered", map[string]interface{}{
		logger.FieldUserID: user.ID,
	})

	respond.Created(c, "User registered", authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: signed,
	})
}

// Login handles POST /api/v1/auth/login. An unknown email and a wrong
// password take the same exit so callers cannot enumerate accounts.
func (h *Handler) Login(c *gin.Context) {
	body := middleware.ValidatedBody(c)
	email, _ := body["email"].(string)
	plaintext, _ := body["password"].(string)

	ctx := c.Request.Context()

	user, err := h.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.Error(c, apperrors.InvalidCredentials())
			return
		}
		respond.Error(c, apperrors.Internal(err))
		return
	}

	if err := h.hasher.Verify(ctx, plaintext, user.PasswordHash); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			respond.Error(c, apperrors.InvalidCredentials())
			return
		}
		respond.Error(c, apperrors.Internal(err))
		return
	}

	signed, err := h.tokens.Issue(user.ID)
	if err != nil {
		respond.Error(c, apperrors.Internal(err))
		return
	}

	h.log.Info("User logged in", map[string]interface{}{
		logger.FieldUserID: user.ID,
	})

	respond.OK(c, "Login successful", authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: signed,
	})
}

// Me handles GET /api/v1/auth/me. The auth guard has already populated the
// identity; this handler resolves the fresh user record for it.
func (h *Handler) Me(c *gin.Context) {
	identity, err := authctx.GetOrError(c.Request.Context())
	if err != nil {
		respond.Error(c, apperrors.Unauthenticated())
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.Error(c, apperrors.Unauthenticated())
			return
		}
		respond.Error(c, apperrors.Internal(err))
		return
	}

	respond.OK(c, "Success", identityResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}
