package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RateLimitedMessage is returned to callers that exhausted their window.
const RateLimitedMessage = "Too many requests, please try again later."

// RateLimitStore counts hits per key in fixed windows.
// Hit records one hit and returns the count inside the current window and
// the time that window ends.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}

// RateLimitConfig defines the limit for a route or group.
type RateLimitConfig struct {
	Max       int                      // Maximum requests allowed in the window
	Window    time.Duration            // Time window for the limit
	KeyFn     func(c fiber.Ctx) string // Returns the key to rate limit on
	Store     RateLimitStore           // Defaults to a fresh MemoryStore
	OnLimited func()                   // Called for every rejected request
}

// RateLimiter is a fixed-window rate limiter over a RateLimitStore.
type RateLimiter struct {
	config RateLimitConfig
}

// NewRateLimiter creates a rate limiter with the given config.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Max <= 0 {
		cfg.Max = 60
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore(nil)
	}
	return &RateLimiter{config: cfg}
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
// Store failures let the request through.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := rl.config.KeyFn(c)

		count, resetAt, err := rl.config.Store.Hit(c, key, rl.config.Window)
		if err != nil {
			Logger.Warn().Err(err).Msg("rate limit store unavailable, allowing request")
			return c.Next()
		}

		remaining := rl.config.Max - count
		setRateLimitHeaders(c, rl.config.Max, remaining, resetAt)

		if remaining < 0 {
			if rl.config.OnLimited != nil {
				rl.config.OnLimited()
			}
			retryAfter := int(time.Until(resetAt).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", max(retryAfter, 1)))
			return ErrorResponse(c, fiber.StatusTooManyRequests, RateLimitedMessage)
		}

		return c.Next()
	}
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
	c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", max(remaining, 0)))
	c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt.Unix()))
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}
