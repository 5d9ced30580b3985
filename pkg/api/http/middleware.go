package http

import (
	"fmt"
	"time"

	"github.com/aescanero/listservice/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// CORS middleware
func corsMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// requestID propagates X-Request-ID, generating one when absent
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs the start and end of every request. A panic raised
// further down the chain is logged and then re-raised untouched so the
// recovery middleware still decides the response.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		id := c.GetString(requestIDKey)

		logger.Info("request started",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", id))

		defer func() {
			if r := recover(); r != nil {
				logger.Error("request failed",
					zap.String("method", method),
					zap.String("path", path),
					zap.String("request_id", id),
					zap.String("error", fmt.Sprint(r)),
					zap.Float64("duration_seconds", time.Since(start).Seconds()))
				panic(r)
			}
		}()

		c.Next()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("request_id", id),
			zap.Int("status", c.Writer.Status()),
			zap.Float64("duration_seconds", time.Since(start).Seconds()),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		logger.Info("request completed", fields...)
	}
}

// requestMetrics records request counts and latency. It runs outside the
// recovery middleware so recovered panics are counted with their final status.
func requestMetrics(collector *prometheus.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
