package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/port/outbound"
	apperrors "github.com/propmarket/server/internal/utils/errors"
	"github.com/propmarket/server/internal/utils/logger"
)

// Rate limit response headers.
const (
	RateLimitLimit     = "X-RateLimit-Limit"
	RateLimitRemaining = "X-RateLimit-Remaining"
	RateLimitReset     = "X-RateLimit-Reset"
	RetryAfter         = "Retry-After"
)

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket of a request. Defaults to the client IP.
	KeyFunc func(*gin.Context) string
	// Logger receives limiter failures. Requests go through when the limiter is down.
	Logger *logger.Logger
}

// RateLimit rejects requests over cfg.Limit per cfg.Window with 429 RATE_LIMITED.
// A nil limiter or a non-positive limit disables it.
func RateLimit(limiter outbound.RateLimiterPort, cfg RateLimitConfig) gin.HandlerFunc {
	if limiter == nil || cfg.Limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ipKey
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.New(nil)
	}
	limit := strconv.Itoa(cfg.Limit)
	retryAfter := strconv.Itoa(int(cfg.Window.Seconds()))

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := cfg.KeyFunc(c)

		allowed, err := limiter.Allow(ctx, key, cfg.Limit, cfg.Window)
		if err != nil {
			cfg.Logger.WithRequest(ctx).Warn("rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		remaining, err := limiter.GetRemaining(ctx, key, cfg.Limit, cfg.Window)
		if err != nil {
			remaining = 0
		}
		h := c.Writer.Header()
		h.Set(RateLimitLimit, limit)
		h.Set(RateLimitRemaining, strconv.Itoa(remaining))
		h.Set(RateLimitReset, strconv.FormatInt(time.Now().Add(cfg.Window).Unix(), 10))

		if !allowed {
			h.Set(RetryAfter, retryAfter)
			abort(c, apperrors.RateLimited("Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}

// RateLimitByIP buckets public endpoints per route and client IP.
func RateLimitByIP(limiter outbound.RateLimiterPort, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return RateLimit(limiter, RateLimitConfig{
		Limit:  limit,
		Window: window,
		Logger: log,
		KeyFunc: func(c *gin.Context) string {
			return ipKey(c) + ":" + c.FullPath()
		},
	})
}

// RateLimitByUser buckets per authenticated user, by IP for anonymous callers.
func RateLimitByUser(limiter outbound.RateLimiterPort, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return RateLimit(limiter, RateLimitConfig{
		Limit:  limit,
		Window: window,
		Logger: log,
		KeyFunc: func(c *gin.Context) string {
			if IsAuthenticated(c) {
				return "user:" + GetUserID(c).String()
			}
			return ipKey(c)
		},
	})
}

func ipKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}
