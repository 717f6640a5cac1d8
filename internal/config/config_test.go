package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

const minimalConfig = `
app:
  environment: development
token:
  secret: file-secret
`

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: authd
  environment: staging
server:
  port: 8080
token:
  secret: file-secret
  ttl: 24h
rate_limit:
  max_requests: 5
  window: 30s
`)

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Environment != "staging" {
		t.Errorf("expected staging, got %q", cfg.App.Environment)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Token.Secret != "file-secret" {
		t.Errorf("expected file secret, got %q", cfg.Token.Secret)
	}
	if cfg.Token.TTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.Token.TTL)
	}
	if cfg.RateLimit.MaxRequests != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Token.TTL != 720*time.Hour {
		t.Errorf("expected default ttl 720h, got %s", cfg.Token.TTL)
	}
	if cfg.RateLimit.MaxRequests != 20 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Password.BcryptCost != 10 {
		t.Errorf("expected default bcrypt cost 10, got %d", cfg.Password.BcryptCost)
	}
	if !cfg.App.Debug {
		t.Error("development environment should enable debug")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("TOKEN_SECRET", "env-secret")
	t.Setenv("LOGGING_LEVEL", "debug")

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("expected env port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Token.Secret != "env-secret" {
		t.Errorf("expected env secret to win, got %q", cfg.Token.Secret)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	path := writeConfigFile(t, `
app:
  environment: development
`)

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected validation failure for missing token secret")
	}
}

func TestLoad_InvalidEnvironmentFails(t *testing.T) {
	path := writeConfigFile(t, `
app:
  environment: sandbox
token:
  secret: file-secret
`)

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected validation failure for unknown environment")
	}
}

func TestIsProduction(t *testing.T) {
	cfg := AppConfig{Environment: "production"}
	if !cfg.IsProduction() {
		t.Error("expected production")
	}
	cfg.Environment = "development"
	if cfg.IsProduction() {
		t.Error("development is not production")
	}
}
