package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-check/internal/shared/server/respond"
	"resume-check/internal/shared/telemetry"
	"resume-check/internal/shared/util"
)

// Recovery turns a handler panic into a 500 error envelope. The stack goes to
// the log only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("request.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"session_id": util.ShortHash(SessionIDFromContext(c)),
				"method":     c.Request.Method,
				"route":      c.FullPath(),
				"panic":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
		}()
		c.Next()
	}
}
