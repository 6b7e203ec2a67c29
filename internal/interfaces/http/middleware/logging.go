package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"fiction-catalog-api/pkg/logger"
)

// AccessLog 访问日志中间件
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		ctx := c.Request.Context()
		switch {
		case status >= 500:
			logger.Warn(ctx, "http request failed", args...)
		case c.Request.URL.Path == "/health" || c.Request.URL.Path == "/live":
			logger.Debug(ctx, "http request", args...)
		default:
			logger.Info(ctx, "http request", args...)
		}
	}
}
