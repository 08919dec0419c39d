package audit

import (
	"sort"

	"github.com/account-compliance-api/internal/models"
)

// Project maps selected accounts to the display table, oldest passwords
// first. Equal ages are ordered by their position in the upload.
func Project(accounts []models.Account, rules Rules) models.Table {
	sorted := make([]models.Account, len(accounts))
	copy(sorted, accounts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PasswordAgeDays != sorted[j].PasswordAgeDays {
			return sorted[i].PasswordAgeDays > sorted[j].PasswordAgeDays
		}
		return sorted[i].Index < sorted[j].Index
	})

	rows := make([]models.TableRow, len(sorted))
	for i, a := range sorted {
		rows[i] = models.TableRow{
			Name:        a.DisplayName,
			Email:       a.Email,
			Status:      a.Status,
			PasswordAge: a.PasswordAgeDays,
			LastChange:  a.LastChangeDisplay,
			Highlight:   rules.Highlight(a),
		}
	}

	return models.Table{Columns: models.Columns, Rows: rows}
}

// View is the output of one render pass
type View struct {
	Title   string
	Summary models.Summary
	Table   models.Table
}

// Render runs classification, selection and projection from scratch
func Render(ds *Dataset, rules Rules, state models.FilterState) View {
	cls := Classify(ds.Accounts, rules)
	summary := cls.Summary()
	summary.Anomalies = len(ds.Anomalies)

	return View{
		Title:   state.Category.Title(),
		Summary: summary,
		Table:   Project(Select(ds.Accounts, cls, state), rules),
	}
}
