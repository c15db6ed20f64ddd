package server

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDMiddleware ensures every request has a request_id available in headers and context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// RequestLoggingMiddleware logs each finished request with its status and duration
func RequestLoggingMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			logger.Errorw("request completed with server error", fields...)
		case status >= 400:
			logger.Warnw("request completed with client error", fields...)
		default:
			logger.Infow("request completed", fields...)
		}
	}
}

// RecoveryMiddleware converts panics to 500 responses and logs the stack
func RecoveryMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered",
					"request_id", c.GetString("request_id"),
					"panic", r,
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(500, gin.H{"error": "Internal server error", "request_id": c.GetString("request_id")})
			}
		}()
		c.Next()
	}
}
