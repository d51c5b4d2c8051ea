package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-check/internal/shared/server/respond"
)

const (
	// SessionHeader carries the browser-tab session a report belongs to.
	SessionHeader = "X-Session-Id"

	sessionIDKey    = "sessionId"
	maxSessionIDLen = 128
)

// Session requires a well-formed session header on every request outside
// the public paths and stores it in context.
func Session(publicPaths ...string) gin.HandlerFunc {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if _, ok := public[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing session", nil)
			return
		}
		if !validSessionID(sessionID) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid session id", []map[string]string{
				{"field": SessionHeader, "issue": "must be 1-128 letters, digits, '-' or '_'"},
			})
			return
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID set by the Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

func validSessionID(id string) bool {
	if len(id) > maxSessionIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
