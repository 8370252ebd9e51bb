package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs tables as aligned text for terminals
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format writes the title as a banner line followed by the table.
func (f *TableFormatter) Format(t *Table) error {
	if t.Title != "" {
		if _, err := fmt.Fprintf(f.writer, "------ %s ------\n", t.Title); err != nil {
			return err
		}
	}

	tw := tablewriter.NewWriter(f.writer)
	tw.SetHeader(t.Columns)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)
	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range cells {
			if i < len(row) {
				cells[i] = cellText(row[i])
			}
		}
		tw.Append(cells)
	}
	tw.Render()
	return nil
}
