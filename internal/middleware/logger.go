package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"syndic-be-svc/pkg/logger"
)

// LoggerMiddleware logs every request with method, path, status and latency
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.WithFields(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}).Info("Request processed")
	}
}
