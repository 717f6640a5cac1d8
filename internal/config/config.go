// Package config aggregates and loads service configuration from a YAML
// file, a .env file, and environment variables, in increasing precedence.
package config

import (
	"fmt"

	"github.com/skillsenselab/authd/internal/auth/password"
	"github.com/skillsenselab/authd/internal/auth/token"
	"github.com/skillsenselab/authd/internal/logger"
	"github.com/skillsenselab/authd/internal/server"
	"github.com/skillsenselab/authd/internal/server/middleware"
	"github.com/skillsenselab/authd/internal/store"
)

// AppConfig contains essential fields every service needs.
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults applies default values to app configuration.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "authd"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Validate validates app configuration.
func (c *AppConfig) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	for _, v := range validEnvs {
		if c.Environment == v {
			return nil
		}
	}
	return fmt.Errorf("app.environment must be one of [development, staging, production] (got: %s)", c.Environment)
}

// IsProduction reports whether the service runs in production mode.
// Production mode suppresses internal error text in responses.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Config is the full service configuration.
type Config struct {
	App       AppConfig                  `yaml:"app" mapstructure:"app"`
	Server    server.Config              `yaml:"server" mapstructure:"server"`
	Logging   logger.Config              `yaml:"logging" mapstructure:"logging"`
	Database  store.Config               `yaml:"database" mapstructure:"database"`
	Token     token.Config               `yaml:"token" mapstructure:"token"`
	Password  password.Config            `yaml:"password" mapstructure:"password"`
	RateLimit middleware.RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	c.App.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.RateLimit.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Token.Validate(); err != nil {
		return err
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	return c.RateLimit.Validate()
}
