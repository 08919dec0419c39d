package service

import (
	"context"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/internal/repository"
	"github.com/rs/zerolog"
)

// filterService is the concrete implementation of FilterService
type filterService struct {
	repos *repository.Repositories
	rules audit.Rules
	log   zerolog.Logger
}

// newFilterService creates a new FilterService
func newFilterService(repos *repository.Repositories, rules audit.Rules, log zerolog.Logger) *filterService {
	return &filterService{
		repos: repos,
		rules: rules,
		log:   log.With().Str("service", "filter").Logger(),
	}
}

// ApplyEvent transitions the session's filter state and returns the report
// rendered under the new state
func (s *filterService) ApplyEvent(ctx context.Context, id string, event models.FilterEvent) (*models.Report, error) {
	session, err := s.repos.Session.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := audit.Apply(session.Filter, event)
	if err != nil {
		return nil, err
	}

	session, err = s.repos.Session.UpdateFilter(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("session_id", id).
		Str("action", string(event.Action)).
		Str("category", string(next.Category)).
		Bool("search", next.Search != "").
		Msg("Filter updated")

	return buildReport(session, s.rules), nil
}
