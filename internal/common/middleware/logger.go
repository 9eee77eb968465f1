package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"miniapp-auth-backend/internal/common/logger"
)

// Logger emits one structured log line per request. The query string is
// included; init-data travels in the body or a header, never in the query,
// so nothing secret is logged here.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		logger.Info().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("body_size", c.Writer.Size()).
			Msg("Request processed")
	}
}
