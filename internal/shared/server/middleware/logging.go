package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"consultant-backend/internal/shared/metrics"
	"consultant-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request. Handlers may set "docType" and
// "storageKey" on the context to have them included.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"bytes_in":    c.Request.ContentLength,
			"doc_type":    c.GetString("docType"),
			"storage_key": c.GetString("storageKey"),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}

// Metrics counts every finished request by method, matched route and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}
