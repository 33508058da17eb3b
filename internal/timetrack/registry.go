package timetrack

import (
	"sync"
	"time"
)

// Registry is the in-memory table of currently timed voice sessions,
// keyed by user ID. It is the single source of truth for who is being
// timed right now. All mutations are atomic per call, so handlers for
// the same user can never lose an update or accrue an interval twice.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]time.Time
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]time.Time),
	}
}

// Begin records a session start for userID unless one already exists.
// A re-entrant join must not reset a running timer, so an existing
// entry is left untouched and Begin reports false.
func (r *Registry) Begin(userID string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[userID]; ok {
		return false
	}
	r.sessions[userID] = now
	return true
}

// End removes and returns the session start for userID. The second
// return is false if the user had no active session; callers treat
// that as a recoverable no-op.
func (r *Registry) End(userID string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start, ok := r.sessions[userID]
	if ok {
		delete(r.sessions, userID)
	}
	return start, ok
}

// PeekAndReset returns the session start for userID and restarts the
// timer at now, keeping the session active. Used for mid-session
// flushes (stats requests, the periodic sweep).
func (r *Registry) PeekAndReset(userID string, now time.Time) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	start, ok := r.sessions[userID]
	if ok {
		r.sessions[userID] = now
	}
	return start, ok
}

// Snapshot returns a copy of all active sessions.
func (r *Registry) Snapshot() map[string]time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]time.Time, len(r.sessions))
	for id, start := range r.sessions {
		out[id] = start
	}
	return out
}

// Contains reports whether userID has an active session.
func (r *Registry) Contains(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[userID]
	return ok
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
