package middleware

import (
	"net/http"

	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuditMiddleware writes an audit log line for every researcher write operation.
// Request bodies are not recorded.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		c.Next()

		subject := "anonymous"
		if claims, err := GetResearcherClaims(c); err == nil {
			subject = claims.Subject
		}

		observability.Logger().Info("audit",
			zap.String("audit.action", method),
			zap.String("audit.resource", c.FullPath()),
			zap.String("audit.subject", subject),
			zap.Int("audit.status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
	}
}
