// Package ui renders tabular command output.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders a fixed set of columns as an aligned text table with a
// header row. Columns size themselves to their widest cell.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one data row. Missing cells render empty; extra cells
// are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := 0; i < len(t.headers) && i < len(cells); i++ {
		row[i] = cells[i]
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render draws the table for the given writer. Styling follows the
// writer: a terminal gets a bold header and a muted rule, anything else
// (pipes, files, test buffers) gets plain text.
func (t *Table) Render(w io.Writer) string {
	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true)
	cellStyle := r.NewStyle()

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		BorderStyle(r.NewStyle().Faint(true)).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col < len(t.headers)-1 {
				style = style.PaddingRight(2)
			}
			return style
		}).
		Headers(t.headers...).
		Rows(t.rows...)

	return tbl.Render()
}
