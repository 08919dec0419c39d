package service

import (
	"context"
	"io"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/config"
	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuditService defines the interface for upload and report operations
type AuditService interface {
	CreateSession(ctx context.Context, r io.Reader, filename string) (*models.Report, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	GetAnomalies(ctx context.Context, id string) ([]models.Anomaly, error)
	DeleteSession(ctx context.Context, id string) error
}

// FilterService defines the interface for filter state transitions
type FilterService interface {
	ApplyEvent(ctx context.Context, id string, event models.FilterEvent) (*models.Report, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	Export(ctx context.Context, id string, w io.Writer, format string) error
}

// SessionService defines the interface for session lifecycle management
type SessionService interface {
	StartJanitor(ctx context.Context) // non-blocking
	StopJanitor()
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Audit   AuditService
	Filter  FilterService
	Export  ExportService
	Session SessionService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	rules := audit.Rules{MaxAgeDays: cfg.Audit.PasswordMaxAgeDays}

	return &Services{
		Audit:   newAuditService(repos, rules, log),
		Filter:  newFilterService(repos, rules, log),
		Export:  newExportService(repos, rules, log),
		Session: newSessionService(repos.Session, cfg.Session, log),
	}
}

// buildReport runs classification, selection and projection for a session
func buildReport(s *models.Session, rules audit.Rules) *models.Report {
	ds := &audit.Dataset{Accounts: s.Accounts, Anomalies: s.Anomalies}
	view := audit.Render(ds, rules, s.Filter)

	return &models.Report{
		SessionID: s.ID,
		Filename:  s.Filename,
		Title:     view.Title,
		Summary:   view.Summary,
		Filter:    s.Filter,
		Table:     view.Table,
		CreatedAt: s.CreatedAt,
	}
}
