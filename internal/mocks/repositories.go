package mocks

import (
	"context"
	"time"

	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/internal/repository"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	Sessions    map[string]*models.Session
	CreateError error
	CountError  error
}

// Verify interface compliance
var _ repository.SessionRepository = (*MockSessionRepository)(nil)

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[string]*models.Session),
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.Sessions[session.ID] = session
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	s, ok := m.Sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return s, nil
}

func (m *MockSessionRepository) UpdateFilter(ctx context.Context, id string, filter models.FilterState) (*models.Session, error) {
	s, ok := m.Sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	s.Filter = filter
	return s, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.Sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.Sessions, id)
	return nil
}

func (m *MockSessionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	removed := 0
	for id, s := range m.Sessions {
		if s.LastSeenAt.Before(cutoff) {
			delete(m.Sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MockSessionRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.Sessions), nil
}
