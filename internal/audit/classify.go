package audit

import (
	"github.com/account-compliance-api/internal/models"
)

// Rules holds the thresholds the predicates are evaluated against
type Rules struct {
	MaxAgeDays int
}

// DefaultRules expire passwords older than 90 days
func DefaultRules() Rules {
	return Rules{MaxAgeDays: models.DefaultPasswordMaxAgeDays}
}

// Blocked reports whether the account is locked out
func (r Rules) Blocked(a models.Account) bool {
	return a.Status == models.StatusBlocked
}

// Disabled reports whether the account is disabled
func (r Rules) Disabled(a models.Account) bool {
	return a.Status == models.StatusDisabled
}

// Expired reports whether the password is older than the threshold
func (r Rules) Expired(a models.Account) bool {
	return a.PasswordAgeDays > r.MaxAgeDays
}

// Compliant requires an active account with a fresh password
func (r Rules) Compliant(a models.Account) bool {
	return a.PasswordAgeDays <= r.MaxAgeDays && a.Status == models.StatusActive
}

// Highlight marks rows the renderer should flag as risky
func (r Rules) Highlight(a models.Account) bool {
	return a.Status != models.StatusActive || r.Expired(a)
}

// Classification holds the positions of accounts in each subset. Subsets
// overlap; an account can be both disabled and expired.
type Classification struct {
	Total     int
	Blocked   []int
	Disabled  []int
	Expired   []int
	Compliant []int
}

// Classify evaluates every predicate over accounts
func Classify(accounts []models.Account, rules Rules) *Classification {
	c := &Classification{Total: len(accounts)}
	for i, a := range accounts {
		if rules.Blocked(a) {
			c.Blocked = append(c.Blocked, i)
		}
		if rules.Disabled(a) {
			c.Disabled = append(c.Disabled, i)
		}
		if rules.Expired(a) {
			c.Expired = append(c.Expired, i)
		}
		if rules.Compliant(a) {
			c.Compliant = append(c.Compliant, i)
		}
	}
	return c
}

// Subset returns the positions for a category. ok is false for CategoryNone
// and unknown categories.
func (c *Classification) Subset(cat models.Category) (positions []int, ok bool) {
	switch cat {
	case models.CategoryBlocked:
		return c.Blocked, true
	case models.CategoryDisabled:
		return c.Disabled, true
	case models.CategoryExpired:
		return c.Expired, true
	case models.CategoryCompliant:
		return c.Compliant, true
	default:
		return nil, false
	}
}

// Summary returns the aggregate counters
func (c *Classification) Summary() models.Summary {
	return models.Summary{
		Total:     c.Total,
		Blocked:   len(c.Blocked),
		Disabled:  len(c.Disabled),
		Expired:   len(c.Expired),
		Compliant: len(c.Compliant),
	}
}
