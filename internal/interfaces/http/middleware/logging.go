package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
)

// Logger logs one line per request with latency and status. 4xx go to
// warn, 5xx to error, the rest to debug to keep production logs quiet.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if requestID := c.GetHeader("X-Request-ID"); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		if userID, exists := c.Get(constants.ContextKeyUserID); exists {
			args = append(args, "user_id", userID)
		}
		if resellerID, exists := c.Get(constants.ContextKeyResellerID); exists {
			args = append(args, "reseller_id", resellerID)
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		default:
			log.Debugw("HTTP request completed", args...)
		}
	}
}
