package token

import (
	"errors"
	"time"
)

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key, held only by the issuing process.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// TTL is the lifetime of issued tokens (default: 720h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = 720 * time.Hour
	}
	if c.Issuer == "" {
		c.Issuer = "authd"
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token.secret is required")
	}
	if c.TTL <= 0 {
		return errors.New("token.ttl must be positive")
	}
	return nil
}
