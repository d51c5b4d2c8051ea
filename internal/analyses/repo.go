package analyses

import "context"

// Repo holds the current analysis of each session.
type Repo interface {
	// Put replaces the session's current analysis wholesale.
	Put(ctx context.Context, analysis Analysis) error
	Current(ctx context.Context, sessionID string) (Analysis, error)
	Delete(ctx context.Context, sessionID string) error
}
