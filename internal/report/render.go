package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/account-compliance-api/internal/models"
)

// Render writes the metrics block, the title and the account table.
// A report carrying a warning prints the warning instead of a table.
func Render(w io.Writer, r *models.Report) error {
	if r.Warning != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n", colorYellow.Sprint("Aviso:"), r.Warning); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		return nil
	}

	if err := renderSummary(w, r.Summary); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n\n", colorBold.Sprint(r.Title)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if len(r.Table.Rows) == 0 {
		_, err := fmt.Fprintln(w, "  (sin resultados)")
		return err
	}

	return newAccountTable(r.Table).Render(w)
}

func renderSummary(w io.Writer, s models.Summary) error {
	tbl := NewTable(
		Column{Header: "Total", Align: AlignRight},
		Column{Header: "Bloqueados", Align: AlignRight},
		Column{Header: "Deshabilitados", Align: AlignRight},
		Column{Header: "Claves Expiradas", Align: AlignRight},
		Column{Header: "Cumplen Política", Align: AlignRight},
		Column{Header: "Anomalías", Align: AlignRight},
	)
	tbl.AddRow(
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Blocked),
		strconv.Itoa(s.Disabled),
		strconv.Itoa(s.Expired),
		strconv.Itoa(s.Compliant),
		strconv.Itoa(s.Anomalies),
	)
	return tbl.Render(w)
}

func newAccountTable(t models.Table) *Table {
	tbl := NewTable(
		Column{Header: models.ColumnName},
		Column{Header: models.ColumnEmail},
		Column{Header: models.ColumnStatus, Color: ColorStatus},
		Column{Header: models.ColumnPasswordAge, Align: AlignRight},
		Column{Header: models.ColumnLastChange},
	)
	for _, r := range t.Rows {
		values := []string{r.Name, r.Email, r.Status, strconv.Itoa(r.PasswordAge), r.LastChange}
		if r.Highlight {
			tbl.AddHighlightedRow(values...)
		} else {
			tbl.AddRow(values...)
		}
	}
	return tbl
}
