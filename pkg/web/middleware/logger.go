package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lk2023060901/xsockjs/pkg/logger"
)

// Logger 访问日志中间件。4xx/5xx 记为 Warn，其余 Info。
func Logger(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"latency", time.Since(start).String(),
			"user_agent", c.Request.UserAgent(),
		}

		switch {
		case len(c.Errors) > 0:
			for _, e := range c.Errors.Errors() {
				l.Error(e, fields...)
			}
		case status >= 400:
			l.Warn("http access", fields...)
		default:
			l.Info("http access", fields...)
		}
	}
}
