package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc // optional per-cell color function
}

type row struct {
	values    []string
	highlight bool
}

// Table renders aligned text tables to an io.Writer. Highlighted rows are
// painted whole with HighlightColor, which takes precedence over column colors.
type Table struct {
	columns        []Column
	rows           []row
	HighlightColor ColorFunc
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns, HighlightColor: highlightRed}
}

// AddRow appends a row. Values beyond the column count are silently ignored;
// missing values are treated as empty strings.
func (t *Table) AddRow(values ...string) {
	t.addRow(false, values)
}

// AddHighlightedRow appends a row drawn in the highlight color.
func (t *Table) AddHighlightedRow(values ...string) {
	t.addRow(true, values)
}

func (t *Table) addRow(highlight bool, values []string) {
	r := row{values: make([]string, len(t.columns)), highlight: highlight}
	for i := range r.values {
		if i < len(values) {
			r.values[i] = values[i]
		}
	}
	t.rows = append(t.rows, r)
}

// Render writes the table to w with computed column widths.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	// Widths count runes so accented names line up.
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	for _, r := range t.rows {
		for i, cell := range r.values {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	if err := t.renderHeader(w, widths); err != nil {
		return err
	}

	parts := make([]string, len(t.columns))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	for _, r := range t.rows {
		if err := t.renderRow(w, r, widths); err != nil {
			return err
		}
	}

	return nil
}

func (t *Table) renderHeader(w io.Writer, widths []int) error {
	bold := color.New(color.Bold)
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = bold.Sprint(pad(col.Header, col.Header, widths[i], col.Align))
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func (t *Table) renderRow(w io.Writer, r row, widths []int) error {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := r.values[i]
		display := val
		switch {
		case r.highlight && t.HighlightColor != nil:
			display = t.HighlightColor(val)
		case col.Color != nil:
			display = col.Color(val)
		}
		parts[i] = pad(display, val, widths[i], col.Align)
	}
	if _, err := fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

func highlightRed(val string) string {
	return colorRed.Sprint(val)
}

// pad justifies display using the width of the uncolored raw value.
func pad(display, raw string, width int, align Alignment) string {
	n := width - utf8.RuneCountInString(raw)
	if n < 0 {
		n = 0
	}
	if align == AlignRight {
		return strings.Repeat(" ", n) + display
	}
	return display + strings.Repeat(" ", n)
}
