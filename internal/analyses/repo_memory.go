package analyses

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
// Sessions untouched for longer than TTL are dropped, and once MaxSessions
// are held the least recently seen session makes room for a new one.
type MemoryRepo struct {
	TTL         time.Duration
	MaxSessions int

	mu        sync.Mutex
	bySession map[string]*entry
	now       func() time.Time
	lastSweep time.Time
}

type entry struct {
	analysis Analysis
	lastSeen time.Time
}

// NewMemoryRepo constructs a MemoryRepo on the given clock. A nil clock
// uses the wall clock.
func NewMemoryRepo(now func() time.Time) *MemoryRepo {
	if now == nil {
		now = time.Now
	}
	return &MemoryRepo{
		TTL:         DefaultSessionTTL,
		MaxSessions: DefaultMaxSessions,
		bySession:   make(map[string]*entry),
		now:         now,
	}
}

// Put stores the analysis as the session's current one.
func (r *MemoryRepo) Put(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if analysis.SessionID == "" {
		return ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)
	if _, ok := r.bySession[analysis.SessionID]; !ok && r.MaxSessions > 0 {
		for len(r.bySession) >= r.MaxSessions {
			r.evictOldest()
		}
	}
	r.bySession[analysis.SessionID] = &entry{analysis: analysis.clone(), lastSeen: now}
	return nil
}

// Current returns the session's current analysis and marks the session as
// seen.
func (r *MemoryRepo) Current(ctx context.Context, sessionID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.bySession[sessionID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	if r.expired(e, now) {
		delete(r.bySession, sessionID)
		return Analysis{}, ErrNotFound
	}
	e.lastSeen = now
	return e.analysis.clone(), nil
}

// Delete drops the session's current analysis.
func (r *MemoryRepo) Delete(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.bySession[sessionID]
	if !ok {
		return ErrNotFound
	}
	delete(r.bySession, sessionID)
	if r.expired(e, r.now()) {
		return ErrNotFound
	}
	return nil
}

// Len reports how many sessions hold a live analysis. Expired sessions are
// dropped first.
func (r *MemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSweep = time.Time{}
	r.sweep(r.now())
	return len(r.bySession)
}

func (r *MemoryRepo) expired(e *entry, now time.Time) bool {
	return r.TTL > 0 && now.Sub(e.lastSeen) > r.TTL
}

// sweep runs at most once per TTL.
func (r *MemoryRepo) sweep(now time.Time) {
	if r.TTL <= 0 || now.Sub(r.lastSweep) < r.TTL {
		return
	}
	for id, e := range r.bySession {
		if r.expired(e, now) {
			delete(r.bySession, id)
		}
	}
	r.lastSweep = now
}

func (r *MemoryRepo) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, e := range r.bySession {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	delete(r.bySession, oldestID)
}
