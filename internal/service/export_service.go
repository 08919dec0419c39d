package service

import (
	"context"
	"io"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/repository"
	"github.com/rs/zerolog"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	rules audit.Rules
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, rules audit.Rules, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		rules: rules,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// Export writes the rows currently visible in the session. Nothing is
// cached: each call renders from the session's present filter state.
func (s *exportService) Export(ctx context.Context, id string, w io.Writer, format string) error {
	session, err := s.repos.Session.GetByID(ctx, id)
	if err != nil {
		return err
	}

	report := buildReport(session, s.rules)
	if err := audit.WriteExport(w, report.Table, format); err != nil {
		return err
	}

	s.log.Info().
		Str("session_id", id).
		Str("format", format).
		Str("category", string(session.Filter.Category)).
		Int("rows", len(report.Table.Rows)).
		Msg("Export completed")
	return nil
}
