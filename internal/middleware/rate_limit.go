package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window. 0 disables the limiter.
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter is a fixed-window per-user limiter backed by Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *logrus.Logger
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, logger *logrus.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		logger: logger,
	}
}

// NewEstimationRateLimiter limits calls to the estimation flow per user per hour
func NewEstimationRateLimiter(redisClient *redis.Client, perHour int, logger *logrus.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     perHour,
		KeyPrefix: "rate_limit:estimation",
	}, logger)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting.
// It must run after AuthMiddleware.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.config.Limit <= 0 {
			c.Next()
			return
		}

		userID, exists := UserID(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), userID.String())
		if err != nil {
			// Log error but don't fail the request
			rl.logger.WithError(err).WithField("user_id", userID).Warn("rate limit check failed")
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"rate_limit_remaining": remaining,
				"rate_limit_reset":     resetTime.Unix(),
				"retry_after":          int(time.Until(resetTime).Seconds()),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request for key and reports whether it fits the window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}
