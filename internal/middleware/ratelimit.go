package middleware

import (
	"context"
	"net/http"

	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageTooManyRequests is returned with 429 responses
const MessageTooManyRequests = "Muitas requisições, tente novamente mais tarde"

// ClientLimiter decides whether a client may perform operation now
type ClientLimiter interface {
	Allow(ctx context.Context, key, operation string) bool
}

// RateLimit rejects requests once the caller IP exhausts its budget for operation
func RateLimit(limiter ClientLimiter, operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow(c.Request.Context(), c.ClientIP(), operation) {
			c.Next()
			return
		}

		observability.RateLimitRejections.WithLabelValues(operation).Inc()
		observability.Logger().Warn("rate limit exceeded",
			zap.String("operation", operation),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString(RequestIDKey)))

		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": MessageTooManyRequests})
	}
}
