// Package output renders tabular results as text tables, CSV or JSON Lines.
package output

import (
	"io"
	"sort"

	"github.com/cockroachdb/errors"
)

// Table is an ordered result set.
type Table struct {
	// Title is a caption shown by human-oriented formats.
	Title   string
	Columns []string
	Rows    [][]interface{}
}

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render a table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes t in the formatter's specific format
	Format(t *Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter registered for format ("table", "csv" or
// "jsonl"; "json" is accepted as an alias of "jsonl").
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	default:
		return nil, errors.Newf("unsupported format %q (supported: table, csv, jsonl)", format)
	}
}

// FromMaps builds a table from rows keyed by column name. Columns are the
// union over all rows, sorted by name; missing values become nil.
func FromMaps(title string, rows []map[string]interface{}) *Table {
	columnSet := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			columnSet[col] = true
		}
	}
	columns := make([]string, 0, len(columnSet))
	for col := range columnSet {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	t := &Table{Title: title, Columns: columns, Rows: make([][]interface{}, len(rows))}
	for i, row := range rows {
		values := make([]interface{}, len(columns))
		for j, col := range columns {
			values[j] = row[col]
		}
		t.Rows[i] = values
	}
	return t
}
