package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-check/internal/shared/telemetry"
	"resume-check/internal/shared/util"
)

// AnalysisIDKey is set by handlers that touch an analysis so the request log
// can carry it.
const AnalysisIDKey = "analysisId"

// Logging emits a structured log per request. Session IDs are logged hashed.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		analysisID, _ := c.Get(AnalysisIDKey)
		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"bytes":       c.Writer.Size(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"session_id":  util.ShortHash(SessionIDFromContext(c)),
			"analysis_id": analysisID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
