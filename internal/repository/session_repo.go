package repository

import (
	"context"
	"sync"
	"time"

	"github.com/account-compliance-api/internal/models"
)

// sessionRepo is the in-memory implementation of SessionRepository
type sessionRepo struct {
	mu          sync.RWMutex
	sessions    map[string]*models.Session
	maxSessions int
	now         func() time.Time
}

// NewSessionRepo creates a new session repository holding at most
// maxSessions uploads
func NewSessionRepo(maxSessions int, now func() time.Time) SessionRepository {
	return &sessionRepo{
		sessions:    make(map[string]*models.Session),
		maxSessions: maxSessions,
		now:         now,
	}
}

// Create stores a new session
func (r *sessionRepo) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
		return ErrSessionLimit
	}

	now := r.now()
	stored := *session
	stored.CreatedAt = now
	stored.LastSeenAt = now
	r.sessions[stored.ID] = &stored

	session.CreatedAt = now
	session.LastSeenAt = now
	return nil
}

// GetByID returns a copy of the session and marks it as recently used
func (r *sessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.LastSeenAt = r.now()

	out := *s
	return &out, nil
}

// UpdateFilter replaces the session's filter state
func (r *sessionRepo) UpdateFilter(ctx context.Context, id string, filter models.FilterState) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Filter = filter
	s.LastSeenAt = r.now()

	out := *s
	return &out, nil
}

// Delete removes a session
func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteIdleSince removes sessions not used since cutoff
func (r *sessionRepo) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.LastSeenAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of live sessions
func (r *sessionRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), nil
}
