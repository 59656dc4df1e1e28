package ratelimit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"seatly/pkg/logger"
)

// Middleware enforces per-IP rate limits on every route. Book and
// privacy transitions get their own (tighter) budget.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	log := logger.GetDefault()

	return func(c *gin.Context) {
		limitType := classify(c.Request.Method, c.FullPath())

		result, err := limiter.IsAllowed(c.Request.Context(), c.ClientIP(), limitType)
		if err != nil {
			// Redis trouble should not take the API down; let the
			// request through and rely on the next window.
			log.WithError(err).Warn("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			log.LogRateLimitExceeded(c.Request.Context(), c.ClientIP(), c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": result.ResetTime,
			})
			return
		}

		c.Next()
	}
}

func classify(method, path string) RateLimitType {
	switch {
	case path == "/health" || path == "/ping" || path == "/status":
		return RateLimitTypeHealth
	case method == http.MethodPost && strings.Contains(path, "/legs/"):
		return RateLimitTypeBooking
	case method == http.MethodGet:
		return RateLimitTypePublic
	default:
		return RateLimitTypeDefault
	}
}
