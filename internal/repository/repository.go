package repository

import (
	"context"
	"errors"
	"time"

	"github.com/account-compliance-api/internal/models"
)

var (
	// ErrSessionNotFound is returned for unknown or expired session IDs
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionLimit is returned when the store is full
	ErrSessionLimit = errors.New("too many active sessions")
)

// SessionRepository defines the interface for upload session storage.
// Sessions live in memory only and vanish on restart.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	UpdateFilter(ctx context.Context, id string, filter models.FilterState) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Session SessionRepository
}

// New creates all repositories
func New(maxSessions int) *Repositories {
	return &Repositories{
		Session: NewSessionRepo(maxSessions, time.Now),
	}
}
