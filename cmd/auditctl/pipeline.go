package main

import (
	"errors"
	"os"
	"time"

	"github.com/account-compliance-api/internal/audit"
	"github.com/account-compliance-api/internal/models"
)

// runPipeline ingests path and renders it under the given filter. When the
// file has none of the account fields the returned report carries only a
// warning and the error is still returned.
func runPipeline(path, category, search string) (*models.Report, error) {
	if maxAgeDays < 1 {
		return nil, exitError(ExitInvalidArgs, "auditctl: --max-age-days must be at least 1")
	}

	state, err := buildFilter(category, search)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "auditctl: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, exitError(ExitInvalidArgs, "auditctl: cannot open %q (%v)", path, err)
	}
	defer f.Close()

	records, err := audit.Decode(f)
	if err != nil {
		return nil, exitError(ExitInputError, "auditctl: %s: %v", path, err)
	}

	ds, err := audit.Normalize(records)
	if errors.Is(err, audit.ErrNoKnownFields) {
		return &models.Report{Filename: path, Warning: err.Error()}, exitError(ExitInputError, "")
	}
	if err != nil {
		return nil, exitError(ExitInputError, "auditctl: %s: %v", path, err)
	}

	for _, a := range ds.Anomalies {
		log.Debug().
			Int("record", a.Index).
			Str("field", a.Field).
			Interface("value", a.Value).
			Msg(a.Message)
	}
	if len(ds.Anomalies) > 0 {
		log.Warn().Int("anomalies", len(ds.Anomalies)).Str("file", path).Msg("Export has malformed fields")
	}

	view := audit.Render(ds, audit.Rules{MaxAgeDays: maxAgeDays}, state)
	return &models.Report{
		Filename:  path,
		Title:     view.Title,
		Summary:   view.Summary,
		Filter:    state,
		Table:     view.Table,
		CreatedAt: time.Now(),
	}, nil
}

// buildFilter drives the filter state through the same transitions the
// API uses.
func buildFilter(category, search string) (models.FilterState, error) {
	var state models.FilterState
	var err error

	if category != "" {
		state, err = audit.Apply(state, models.FilterEvent{Action: models.ActionSelectCategory, Category: models.Category(category)})
		if err != nil {
			return state, err
		}
	}
	if search != "" {
		state, err = audit.Apply(state, models.FilterEvent{Action: models.ActionSetSearch, Search: search})
		if err != nil {
			return state, err
		}
	}
	return state, nil
}
