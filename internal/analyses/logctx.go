package analyses

import (
	"context"

	"resume-check/internal/shared/util"
)

type requestIDKey struct{}

// WithRequestID attaches a request ID to the context for logging.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// logFields starts a log record for one session. The raw session id never
// reaches the logs, only its short hash.
func logFields(ctx context.Context, sessionID string) map[string]any {
	fields := map[string]any{"request_id": requestIDFromContext(ctx)}
	if sessionID != "" {
		fields["session_id"] = util.ShortHash(sessionID)
	}
	return fields
}
