// Package token issues and verifies signed, time-limited identity tokens.
//
// Tokens are stateless HS256 JWTs carrying the subject id and an absolute
// expiry. Verification classifies failures so the transport layer can
// distinguish a forged token from an expired one.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failure reasons.
var (
	// ErrMalformed indicates the token is not a parseable JWT.
	ErrMalformed = errors.New("token: malformed")
	// ErrSignature indicates the token signature does not verify.
	ErrSignature = errors.New("token: bad signature")
	// ErrExpired indicates a well-signed token past its expiry.
	ErrExpired = errors.New("token: expired")
)

// Claims are the claims embedded in issued tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// SubjectID returns the subject identifier the token was issued for.
func (c *Claims) SubjectID() string {
	return c.Subject
}

// Service issues and verifies tokens with a shared HMAC secret.
type Service struct {
	cfg Config
}

// NewService creates a token service from config.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.cfg.TTL
}

// Issue creates a signed token for the given subject with expiry now + TTL.
func (s *Service) Issue(subjectID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. The signature is verified
// before expiry is interpreted, so a forged-but-unexpired token always fails
// with ErrSignature and a well-signed-but-expired one with ErrExpired.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !tok.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(tok *jwt.Token) (interface{}, error) {
	if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", tok.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

// classifyParseError maps golang-jwt errors onto the package sentinels.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return ErrMalformed
	}
}
