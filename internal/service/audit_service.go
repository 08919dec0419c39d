package service

import (
	"context"
	"fmt"
	"io"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// auditService is the concrete implementation of AuditService
type auditService struct {
	repos *repository.Repositories
	rules audit.Rules
	log   zerolog.Logger
}

// newAuditService creates a new AuditService
func newAuditService(repos *repository.Repositories, rules audit.Rules, log zerolog.Logger) *auditService {
	return &auditService{
		repos: repos,
		rules: rules,
		log:   log.With().Str("service", "audit").Logger(),
	}
}

// CreateSession ingests an upload and opens a session with no filter.
// Fatal input problems are returned as *audit.InputError.
func (s *auditService) CreateSession(ctx context.Context, r io.Reader, filename string) (*models.Report, error) {
	records, err := audit.Decode(r)
	if err != nil {
		return nil, err
	}

	ds, err := audit.Normalize(records)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		Filename:  filename,
		Accounts:  ds.Accounts,
		Anomalies: ds.Anomalies,
	}
	if err := s.repos.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	event := s.log.Info()
	if len(ds.Anomalies) > 0 {
		event = s.log.Warn()
	}
	event.
		Str("session_id", session.ID).
		Str("file", filename).
		Int("records", len(ds.Accounts)).
		Int("anomalies", len(ds.Anomalies)).
		Msg("Audit session created")

	return buildReport(session, s.rules), nil
}

// GetReport re-derives the report from the session's current filter state
func (s *auditService) GetReport(ctx context.Context, id string) (*models.Report, error) {
	session, err := s.repos.Session.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildReport(session, s.rules), nil
}

// GetAnomalies returns the per-record anomalies found during ingestion
func (s *auditService) GetAnomalies(ctx context.Context, id string) ([]models.Anomaly, error) {
	session, err := s.repos.Session.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.Anomalies, nil
}

// DeleteSession discards an upload
func (s *auditService) DeleteSession(ctx context.Context, id string) error {
	if err := s.repos.Session.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("session_id", id).Msg("Audit session deleted")
	return nil
}
