package audit

import (
	"fmt"
	"strings"

	"github.com/account-compliance-api/internal/models"
	"golang.org/x/text/cases"
)

// Apply returns the state that results from ev. The input state is never
// modified; on error the old state is returned unchanged.
func Apply(state models.FilterState, ev models.FilterEvent) (models.FilterState, error) {
	switch ev.Action {
	case models.ActionSelectCategory:
		if ev.Category == models.CategoryNone || !ev.Category.Valid() {
			return state, fmt.Errorf("%w: %q", ErrInvalidCategory, ev.Category)
		}
		state.Category = ev.Category
	case models.ActionClearCategory:
		state.Category = models.CategoryNone
	case models.ActionSetSearch:
		state.Search = strings.TrimSpace(ev.Search)
	case models.ActionClearSearch:
		state.Search = ""
	case models.ActionClearAll:
		state = models.FilterState{}
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return state, nil
}

// Select returns the accounts visible under state, in input order. The
// category picks a subset; the search term narrows it further.
func Select(accounts []models.Account, cls *Classification, state models.FilterState) []models.Account {
	var selected []models.Account
	if positions, ok := cls.Subset(state.Category); ok {
		selected = make([]models.Account, 0, len(positions))
		for _, p := range positions {
			selected = append(selected, accounts[p])
		}
	} else {
		selected = accounts
	}

	term := strings.TrimSpace(state.Search)
	if term == "" {
		return selected
	}

	fold := cases.Fold()
	term = fold.String(term)

	matched := make([]models.Account, 0, len(selected))
	for _, a := range selected {
		if strings.Contains(fold.String(a.DisplayName), term) || strings.Contains(fold.String(a.Email), term) {
			matched = append(matched, a)
		}
	}
	return matched
}
