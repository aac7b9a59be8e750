package ratelimit

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/todoapp/internal/pkg/response"
)

// Middleware creates a rate limiting middleware for Gin keyed by client IP
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		limit := strconv.Itoa(limiter.Limit())

		if !limiter.Allow(key) {
			retryAfter := strconv.Itoa(int(math.Ceil(limiter.RetryAfter().Seconds())))

			c.Header("X-RateLimit-Limit", limit)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", retryAfter)

			response.TooManyRequests(c, "Rate limit exceeded. Try again in "+retryAfter+"s.")
			return
		}

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.GetRemaining(key)))

		c.Next()
	}
}
