package spreadsheet

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"feedbackpulse/internal/feedback"
)

// MissingValues are the cell texts treated as missing, besides empty cells.
var MissingValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Table is a parsed sheet: ordered, uniquely named string columns backed by
// a dataframe. It satisfies feedback.Table.
type Table struct {
	sheet string
	names []string
	rows  int
	df    dataframe.DataFrame
}

var _ feedback.Table = (*Table)(nil)

func newTable(sheet string, rows [][]string) (*Table, error) {
	if len(rows) < 2 {
		return nil, ErrMissingHeaderRow
	}

	header := rows[1]
	data := make([][]string, 0, len(rows)-2)
	width := len(header)
	for _, row := range rows[2:] {
		if isBlankRow(row) {
			continue
		}
		data = append(data, row)
		if len(row) > width {
			width = len(row)
		}
	}

	t := &Table{
		sheet: sheet,
		names: normalizeHeaders(header, width),
		rows:  len(data),
	}
	if t.rows == 0 {
		return t, nil
	}

	records := make([][]string, 0, len(data)+1)
	records = append(records, t.names)
	for _, row := range data {
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}

	t.df = dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingValues),
	)
	if t.df.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, t.df.Err)
	}
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// Sheet returns the name of the sheet the table was read from.
func (t *Table) Sheet() string { return t.sheet }

// Rows returns the number of data rows below the header.
func (t *Table) Rows() int { return t.rows }

// Names returns the normalized column names in sheet order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Cells returns the named column. Unknown columns yield nil.
func (t *Table) Cells(name string) []feedback.Cell {
	if t.rows == 0 {
		return nil
	}
	col := t.df.Col(name)
	if col.Err != nil {
		return nil
	}

	values := col.Records()
	missing := col.IsNaN()
	cells := make([]feedback.Cell, len(values))
	for i, v := range values {
		if missing[i] {
			cells[i] = feedback.Cell{Missing: true}
			continue
		}
		cells[i] = feedback.Cell{Value: v}
	}
	return cells
}
