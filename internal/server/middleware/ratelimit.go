package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authd/internal/errors"
	"github.com/skillsenselab/authd/internal/server/respond"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// MaxRequests is the number of requests allowed per key per window.
	MaxRequests int `yaml:"max_requests" mapstructure:"max_requests"`
	// Window is the fixed window length.
	Window time.Duration `yaml:"window" mapstructure:"window"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *RateLimitConfig) ApplyDefaults() {
	if c.MaxRequests <= 0 {
		c.MaxRequests = 20
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
}

// Validate checks the configuration.
func (c *RateLimitConfig) Validate() error {
	if c.MaxRequests <= 0 {
		return fmt.Errorf("rate_limit.max_requests must be positive (got: %d)", c.MaxRequests)
	}
	if c.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive (got: %s)", c.Window)
	}
	return nil
}

// window holds per-key fixed-window state.
type window struct {
	count int
	start time.Time
}

// Limiter tracks request counts per client key over a fixed rolling window.
// It is an explicitly constructed component with its own synchronization;
// construct one per server and inject it where needed.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	length  time.Duration
	now     func() time.Time
	done    chan struct{}
}

// NewLimiter creates a Limiter and starts its background cleanup.
func NewLimiter(cfg RateLimitConfig) *Limiter {
	cfg.ApplyDefaults()
	l := &Limiter{
		windows: make(map[string]*window),
		limit:   cfg.MaxRequests,
		length:  cfg.Window,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Allow records a request for key and reports whether it is within the
// limit. The counter increment happens under the lock, so concurrent bursts
// are counted exactly.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.length {
		l.windows[key] = &window{count: 1, start: now}
		return true
	}

	w.count++
	return w.count <= l.limit
}

// Close stops the background cleanup goroutine.
func (l *Limiter) Close() {
	close(l.done)
}

// cleanup periodically evicts windows that have fully elapsed.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(l.length)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			now := l.now()
			for key, w := range l.windows {
				if now.Sub(w.start) >= l.length {
					delete(l.windows, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// KeyFunc extracts the rate limit key from a request.
type KeyFunc func(*gin.Context) string

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// RateLimit returns a Gin middleware that rejects requests over the limit
// with a 429 envelope before any validation or store work happens.
func RateLimit(l *Limiter, keyFunc KeyFunc) gin.HandlerFunc {
	if keyFunc == nil {
		keyFunc = IPBasedKey
	}
	return func(c *gin.Context) {
		if !l.Allow(keyFunc(c)) {
			respond.AbortError(c, apperrors.RateLimited())
			return
		}
		c.Next()
	}
}
