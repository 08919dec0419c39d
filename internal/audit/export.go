package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/account-compliance-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ContentType returns the MIME type for an export format
func ContentType(format string) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// WriteExport writes the table in the given format
func WriteExport(w io.Writer, t models.Table, format string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteCSV writes a header of column labels followed by one line per row
func WriteCSV(w io.Writer, t models.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(rowValues(row)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

const xlsxSheet = "Sheet1"

// WriteXLSX writes the table as a single-sheet workbook. Highlighted rows
// get a red fill.
func WriteXLSX(w io.Writer, t models.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	riskStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#F8D7DA"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create highlight style: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range t.Rows {
		line := i + 2
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		values := []interface{}{row.Name, row.Email, row.Status, row.PasswordAge, row.LastChange}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return err
		}
		if row.Highlight {
			end := lastCol + strconv.Itoa(line)
			if err := f.SetCellStyle(xlsxSheet, cell, end, riskStyle); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", lastCol, 24); err != nil {
		return err
	}

	return f.Write(w)
}

func rowValues(row models.TableRow) []string {
	return []string{
		row.Name,
		row.Email,
		row.Status,
		strconv.Itoa(row.PasswordAge),
		row.LastChange,
	}
}
